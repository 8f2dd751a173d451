// Package query is the gateway's read-through cache over the upstream
// backend. Entries are keyed by scope (the signed-in user), resource and
// params; concurrent reads of one key share a single upstream call, failed
// refreshes fall back to the last good value, and mutations invalidate or
// reset whole resources.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/research-admin-gateway/pkg/cache"
)

// Status is the lifecycle state of one cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Key identifies a cached read.
type Key struct {
	Scope    string
	Resource string
	Params   string
}

func (k Key) String() string {
	return k.Scope + "|" + k.Resource + "|" + k.Params
}

func (k Key) persistKey() string {
	return cache.Key("q", k.Scope, k.Resource, k.Params)
}

// Result is what a read returns. When Stale is true, Data is the last good
// value and Err explains why it could not be refreshed.
type Result[T any] struct {
	Data      T
	Status    Status
	Err       error
	Stale     bool
	CacheHit  bool
	Shared    bool
	FetchedAt time.Time
}

// State is a view-facing summary of one key.
type State struct {
	Status    Status    `json:"status"`
	IsLoading bool      `json:"isLoading"`
	Err       error     `json:"-"`
	Message   string    `json:"message,omitempty"`
	Stale     bool      `json:"stale"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Persister is the optional second tier (redis in production).
type Persister interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// Recorder receives hit/miss observations.
type Recorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// Config tunes a Client.
type Config struct {
	StaleTime  time.Duration
	PersistTTL time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithPersister enables the persisted tier.
func WithPersister(p Persister) Option {
	return func(c *Client) { c.persist = p }
}

// WithRecorder reports hits and misses.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

type entry struct {
	key         Key
	data        interface{}
	hasData     bool
	status      Status
	err         error
	fetchedAt   time.Time
	updatedAt   time.Time
	invalidated bool
}

// Client is safe for concurrent use. Create one per process and pass it to
// the services that read through it.
type Client struct {
	staleTime  time.Duration
	persistTTL time.Duration
	persist    Persister
	recorder   Recorder
	logger     *zap.Logger
	now        func() time.Time

	group singleflight.Group

	mu          sync.Mutex
	entries     map[string]*entry
	generations map[string]uint64
	scopeGens   map[string]uint64
	closed      bool
}

// generation pins a flight to the resource and scope state it started in.
type generation struct {
	resource uint64
	scope    uint64
}

// New builds a Client.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StaleTime < 0 {
		cfg.StaleTime = 0
	}
	c := &Client{
		staleTime:   cfg.StaleTime,
		persistTTL:  cfg.PersistTTL,
		logger:      logger,
		now:         time.Now,
		entries:     make(map[string]*entry),
		generations: make(map[string]uint64),
		scopeGens:   make(map[string]uint64),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("query client closed")

// Fetch returns the value for key, calling fn only when no fresh value is
// cached. An error is returned only when there is no last good value.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (Result[T], error) {
	return fetch(ctx, c, key, false, fn)
}

// Refetch ignores freshness and always asks upstream (still deduplicated).
func Refetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (Result[T], error) {
	return fetch(ctx, c, key, true, fn)
}

type flightResult struct {
	data        interface{}
	err         error
	fetchedAt   time.Time
	fromPersist bool
}

func fetch[T any](ctx context.Context, c *Client, key Key, force bool, fn func(context.Context) (T, error)) (Result[T], error) {
	var zero T
	start := c.now()
	k := key.String()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Result[T]{Status: StatusError, Err: ErrClosed}, ErrClosed
	}
	e := c.entries[k]
	if e == nil {
		e = &entry{key: key, status: StatusIdle}
		c.entries[k] = e
	}
	if !force && e.hasData && !e.invalidated && c.now().Sub(e.fetchedAt) < c.staleTime {
		if data, ok := e.data.(T); ok {
			res := Result[T]{Data: data, Status: StatusSuccess, CacheHit: true, FetchedAt: e.fetchedAt}
			c.mu.Unlock()
			c.record(true, start)
			return res, nil
		}
	}
	skipPersist := force || e.invalidated
	e.status = StatusLoading
	gen := c.generationOf(key)
	c.mu.Unlock()

	// Reads issued after an invalidation or a logout never join a flight
	// that started before it.
	flightKey := fmt.Sprintf("%s#%d.%d", k, gen.resource, gen.scope)
	// The flight outlives the caller that started it: other callers may be
	// waiting on it. Request values such as the bearer token are kept.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		out := flightResult{}

		if !skipPersist && c.persist != nil {
			var cached T
			hit, err := c.persist.Get(flightCtx, key.persistKey(), &cached)
			if err != nil {
				c.logger.Debug("query persist read failed", zap.String("key", k), zap.Error(err))
			}
			if hit {
				out.data, out.fetchedAt, out.fromPersist = cached, c.now(), true
				c.store(key, gen, out)
				return out, nil
			}
		}

		data, err := fn(flightCtx)
		out.fetchedAt = c.now()
		if err != nil {
			out.err = err
			c.store(key, gen, out)
			return out, nil
		}
		out.data = data
		if c.store(key, gen, out) && c.persist != nil {
			c.persistWrite(flightCtx, key, gen, data)
		}
		return out, nil
	})

	var (
		flight flightResult
		shared bool
	)
	select {
	case r := <-ch:
		flight, shared = r.Val.(flightResult), r.Shared
	case <-ctx.Done():
		err := ctx.Err()
		return Result[T]{Status: StatusError, Err: err}, err
	}
	c.record(flight.err == nil && flight.fromPersist, start)

	if flight.err == nil {
		data, ok := flight.data.(T)
		if !ok {
			err := fmt.Errorf("query %s: cached type %T does not match", k, flight.data)
			return Result[T]{Status: StatusError, Err: err}, err
		}
		return Result[T]{Data: data, Status: StatusSuccess, CacheHit: flight.fromPersist, Shared: shared, FetchedAt: flight.fetchedAt}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cur := c.entries[k]; cur != nil && cur.hasData {
		if data, ok := cur.data.(T); ok {
			c.logger.Warn("serving last known good value",
				zap.String("scope", key.Scope),
				zap.String("resource", key.Resource),
				zap.Error(flight.err))
			return Result[T]{Data: data, Status: StatusError, Err: flight.err, Stale: true, Shared: shared, FetchedAt: cur.fetchedAt}, nil
		}
	}
	return Result[T]{Data: zero, Status: StatusError, Err: flight.err, Shared: shared}, flight.err
}

func (c *Client) generationOf(key Key) generation {
	return generation{resource: c.generations[key.Resource], scope: c.scopeGens[key.Scope]}
}

// persistWrite copies data to the persisted tier. When the key was
// invalidated or its scope cleared while the write was in progress, the
// copy is removed again.
func (c *Client) persistWrite(ctx context.Context, key Key, gen generation, data interface{}) {
	pk := key.persistKey()
	if err := c.persist.Set(ctx, pk, data, c.persistTTL); err != nil {
		c.logger.Debug("query persist write failed", zap.String("key", key.String()), zap.Error(err))
		return
	}
	c.mu.Lock()
	current := !c.closed && c.generationOf(key) == gen
	c.mu.Unlock()
	if current {
		return
	}
	if err := c.persist.Invalidate(ctx, pk); err != nil {
		c.logger.Warn("query persist rollback failed", zap.String("key", key.String()), zap.Error(err))
	}
}

// store records a flight outcome and reports whether data was written. A
// fetch that started before the resource was invalidated or reset, or before
// its scope was cleared, never overwrites the entry's data.
func (c *Client) store(key Key, gen generation, out flightResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	k := key.String()
	e := c.entries[k]
	current := c.generationOf(key) == gen
	if e == nil {
		if !current {
			return false
		}
		e = &entry{key: key}
		c.entries[k] = e
	}
	e.updatedAt = out.fetchedAt
	if out.err != nil {
		e.status = StatusError
		e.err = out.err
		return false
	}
	if !current {
		if e.hasData {
			e.status = StatusSuccess
		} else {
			e.status = StatusIdle
		}
		return false
	}
	e.data = out.data
	e.hasData = true
	e.status = StatusSuccess
	e.err = nil
	e.fetchedAt = out.fetchedAt
	e.invalidated = false
	return true
}

func (c *Client) record(hit bool, start time.Time) {
	if c.recorder != nil {
		c.recorder.RecordCacheOperation(hit, c.now().Sub(start))
	}
}

// State reports the lifecycle of a key. Unknown keys are idle.
func (c *Client) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key.String()]
	if e == nil {
		return State{Status: StatusIdle}
	}
	st := State{
		Status:    e.status,
		IsLoading: e.status == StatusLoading,
		Err:       e.err,
		Stale:     e.invalidated || (e.hasData && c.now().Sub(e.fetchedAt) >= c.staleTime),
		UpdatedAt: e.updatedAt,
	}
	if e.err != nil {
		st.Message = e.err.Error()
	}
	return st
}

// Invalidate marks every entry of the resources stale in all scopes. The
// last good values are kept for fallback; persisted copies are dropped.
func (c *Client) Invalidate(ctx context.Context, resources ...string) {
	c.mu.Lock()
	for _, resource := range resources {
		c.generations[resource]++
		for _, e := range c.entries {
			if e.key.Resource == resource {
				e.invalidated = true
			}
		}
	}
	c.mu.Unlock()
	c.dropPersisted(ctx, resources)
}

// Reset removes every entry of the resources, last good values included.
func (c *Client) Reset(ctx context.Context, resources ...string) {
	c.mu.Lock()
	for _, resource := range resources {
		c.generations[resource]++
		for k, e := range c.entries {
			if e.key.Resource == resource {
				delete(c.entries, k)
			}
		}
	}
	c.mu.Unlock()
	c.dropPersisted(ctx, resources)
}

func (c *Client) dropPersisted(ctx context.Context, resources []string) {
	if c.persist == nil {
		return
	}
	for _, resource := range resources {
		pattern := cache.Key("q", "*", resource, "*")
		if err := c.persist.Invalidate(ctx, pattern); err != nil {
			c.logger.Warn("query persist invalidate failed", zap.String("resource", resource), zap.Error(err))
		}
	}
}

// Clear drops everything cached for one scope, used on logout. Fetches
// already in flight for the scope finish without storing their result.
func (c *Client) Clear(ctx context.Context, scope string) {
	c.mu.Lock()
	c.scopeGens[scope]++
	for k, e := range c.entries {
		if e.key.Scope == scope {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
	if c.persist != nil && scope != "" && !strings.ContainsAny(scope, "*?[") {
		if err := c.persist.Invalidate(ctx, cache.Key("q", scope, "*")); err != nil {
			c.logger.Warn("query persist clear failed", zap.String("scope", scope), zap.Error(err))
		}
	}
}

// MutationOptions names what a successful mutation makes outdated.
type MutationOptions struct {
	Invalidates []string
	Resets      []string
	OnSuccess   func()
	OnError     func(error)
}

// Mutate runs fn. On success the named resources are invalidated or reset
// and OnSuccess runs; on failure nothing is touched and OnError receives
// the error. There are no optimistic updates to roll back.
func (c *Client) Mutate(ctx context.Context, opts MutationOptions, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return err
	}
	if len(opts.Invalidates) > 0 {
		c.Invalidate(ctx, opts.Invalidates...)
	}
	if len(opts.Resets) > 0 {
		c.Reset(ctx, opts.Resets...)
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess()
	}
	return nil
}

// Len reports how many keys are held in memory.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close discards all in-memory entries; later reads fail with ErrClosed.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = make(map[string]*entry)
}
