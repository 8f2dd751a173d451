package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/query"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		duration := time.Since(start)
		meta := ensureMeta(c)
		if _, exists := meta["processing_time_ms"]; !exists {
			meta["processing_time_ms"] = duration.Milliseconds()
		}
	}
}

// QueryRefresh forces a refetch of cached reads when the client asks with
// ?refresh=true or Cache-Control: no-cache.
func QueryRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		refresh, _ := strconv.ParseBool(c.Query("refresh"))
		if refresh || strings.Contains(strings.ToLower(c.GetHeader("Cache-Control")), "no-cache") {
			c.Request = c.Request.WithContext(query.WithRefresh(c.Request.Context()))
		}
		c.Next()
	}
}

// SetFreshness records how current the data behind the response is. A
// stale response carries the error that prevented the refresh.
func SetFreshness(c *gin.Context, f query.Freshness) {
	meta := ensureMeta(c)
	meta[cacheHitKey] = f.CacheHit
	meta["stale"] = f.Stale
	if f.Stale && f.Message != "" {
		meta["stale_reason"] = f.Message
	}
	if !f.FetchedAt.IsZero() {
		meta["fetched_at"] = f.FetchedAt.UTC().Format(time.RFC3339)
	}
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
