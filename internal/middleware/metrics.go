package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestObserver receives one observation per routed request.
type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
	ObserveStaleResponse(path string)
}

// Probe and scrape routes are polled constantly and would drown the API traffic.
var unobservedRoutes = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Metrics records the duration and status of every API request under its
// route template. Requests that match no route share the "unmatched" label,
// and reads answered with a stale cached value are counted per route.
func Metrics(observer requestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, skip := unobservedRoutes[route]; skip {
			return
		}
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
		if stale, _ := ExtractMeta(c)["stale"].(bool); stale {
			observer.ObserveStaleResponse(route)
		}
	}
}
