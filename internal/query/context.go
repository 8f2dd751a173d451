package query

import (
	"context"
	"time"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type scopeKey struct{}
type refreshKey struct{}

// WithScope binds reads made with ctx to one user's cache scope.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom returns the scope placed by WithScope, or "" (shared).
func ScopeFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope
}

// WithRefresh asks reads made with ctx to bypass freshness.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

// RefreshRequested reports whether WithRefresh was applied.
func RefreshRequested(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	force, _ := ctx.Value(refreshKey{}).(bool)
	return force
}

// Freshness describes where a read's data came from. It is surfaced to the
// admin UI in response meta so a stale table can show a warning.
type Freshness struct {
	Stale     bool      `json:"stale"`
	CacheHit  bool      `json:"cacheHit"`
	Message   string    `json:"message,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// FreshnessOf summarises a result.
func FreshnessOf[T any](res Result[T]) Freshness {
	f := Freshness{Stale: res.Stale, CacheHit: res.CacheHit, FetchedAt: res.FetchedAt}
	if res.Stale && res.Err != nil {
		f.Message = appErrors.Message(res.Err)
	}
	return f
}

// Load reads key through c, honouring WithScope and WithRefresh on ctx. A
// nil client calls fn directly.
func Load[T any](ctx context.Context, c *Client, resource, params string, fn func(context.Context) (T, error)) (T, Freshness, error) {
	if c == nil {
		data, err := fn(ctx)
		return data, Freshness{FetchedAt: time.Now()}, err
	}
	key := Key{Scope: ScopeFrom(ctx), Resource: resource, Params: params}
	var (
		res Result[T]
		err error
	)
	if RefreshRequested(ctx) {
		res, err = Refetch(ctx, c, key, fn)
	} else {
		res, err = Fetch(ctx, c, key, fn)
	}
	if err != nil {
		var zero T
		return zero, Freshness{}, err
	}
	return res.Data, FreshnessOf(res), nil
}
