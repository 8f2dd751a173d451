package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest("GET", "/api/v1/students", 200, 20*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveUpstream("books.list", 200, 10*time.Millisecond)
	m.ObserveUpstream("books.results", 0, 30*time.Millisecond)
	m.RecordBatch("approve", 2, 1)
	m.ObserveStaleResponse("/api/v1/students")

	snap := m.Snapshot()
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.Equal(t, uint64(2), snap.UpstreamCalls)
	assert.Equal(t, uint64(1), snap.UpstreamErrors)
	assert.InDelta(t, 20.0, snap.AverageUpstreamMs, 0.001)
	assert.Equal(t, uint64(2), snap.BatchItemsSucceeded)
	assert.Equal(t, uint64(1), snap.BatchItemsFailed)
	assert.Equal(t, uint64(1), snap.StaleResponses)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `batch_items_total{action="approve",outcome="failed"} 1`)
	assert.Contains(t, rec.Body.String(), `upstream_request_duration_seconds_count{endpoint="books.list",status="200"} 1`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveUpstream("x", 200, time.Millisecond)
	m.RecordBatch("approve", 1, 0)
	m.ObserveStaleResponse("/api/v1/books")
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type stubCacheRepo struct {
	values  map[string]string
	getErr  error
	deleted []string
}

func (r *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if r.getErr != nil {
		return r.getErr
	}
	v, ok := r.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*string)) = v
	return nil
}

func (r *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.values == nil {
		r.values = map[string]string{}
	}
	r.values[key] = value.(string)
	return nil
}

func (r *stubCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	r.deleted = append(r.deleted, pattern)
	return nil
}

func TestCacheServiceTiers(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, NewMetricsService(), 0, nil, true)
	ctx := context.Background()

	var out string
	hit, err := svc.Get(ctx, "rag:q:u1:students:", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "rag:q:u1:students:", "snapshot", 0))
	hit, err = svc.Get(ctx, "rag:q:u1:students:", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "snapshot", out)

	require.NoError(t, svc.Invalidate(ctx, "rag:q:*:students:*"))
	assert.Equal(t, []string{"rag:q:*:students:*"}, repo.deleted)

	repo.getErr = errors.New("redis down")
	hit, err = svc.Get(ctx, "rag:q:u1:students:", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(&stubCacheRepo{}, nil, 0, nil, false)
	hit, err := svc.Get(context.Background(), "k", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
}
