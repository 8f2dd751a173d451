package query

import (
	"context"
	"errors"
	"path"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type memoryPersister struct {
	mu   sync.Mutex
	data map[string][]string
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{data: map[string][]string{}}
}

func (m *memoryPersister) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]string)) = append([]string(nil), v...)
	return true, nil
}

func (m *memoryPersister) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.([]string)
	return nil
}

func (m *memoryPersister) Invalidate(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryPersister) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

var studentsKey = Key{Scope: "user-1", Resource: "students", Params: "all"}

func countingFetcher(calls *int32, values []string, err error) func(context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(calls, 1)
		if err != nil {
			return nil, err
		}
		return values, nil
	}
}

func TestFetchServesFreshValueFromMemory(t *testing.T) {
	c := New(Config{StaleTime: time.Minute}, zap.NewNop())
	var calls int32

	first, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"other"}, nil))
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, []string{"amina"}, second.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, StatusSuccess, c.State(studentsKey).Status)
}

func TestConcurrentFetchesShareOneUpstreamCall(t *testing.T) {
	c := New(Config{StaleTime: time.Minute}, zap.NewNop())
	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"amina"}, nil
	}

	var wg sync.WaitGroup
	results := make([]Result[[]string], 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Fetch(context.Background(), c, studentsKey, fn)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
	assert.True(t, c.State(studentsKey).IsLoading)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, res := range results {
		assert.Equal(t, []string{"amina"}, res.Data)
	}
}

func TestFailedRefreshFallsBackToLastKnownGood(t *testing.T) {
	c := New(Config{StaleTime: 0}, zap.NewNop())
	var calls int32

	_, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)

	upstreamErr := errors.New("no response received from server")
	res, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, nil, upstreamErr))
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, upstreamErr, res.Err)
	assert.Equal(t, []string{"amina"}, res.Data)

	state := c.State(studentsKey)
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "no response received from server", state.Message)
}

func TestFailedFetchWithoutValueReturnsError(t *testing.T) {
	c := New(Config{StaleTime: time.Minute}, zap.NewNop())
	var calls int32

	res, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, nil, errors.New("403 Forbidden")))
	require.Error(t, err)
	assert.Equal(t, StatusError, res.Status)
	assert.Nil(t, res.Data)
}

func TestInvalidateForcesRefetchButKeepsFallback(t *testing.T) {
	c := New(Config{StaleTime: time.Hour}, zap.NewNop())
	var calls int32
	other := Key{Scope: "user-2", Resource: "students", Params: "all"}

	_, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)
	_, err = Fetch(context.Background(), c, other, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)

	c.Invalidate(context.Background(), "students")
	assert.True(t, c.State(studentsKey).Stale)
	assert.True(t, c.State(other).Stale)

	res, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, nil, errors.New("boom")))
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, []string{"amina"}, res.Data)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestResetDropsFallback(t *testing.T) {
	c := New(Config{StaleTime: time.Hour}, zap.NewNop())
	var calls int32

	_, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)

	c.Reset(context.Background(), "students")
	assert.Equal(t, StatusIdle, c.State(studentsKey).Status)

	_, err = Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, nil, errors.New("boom")))
	require.Error(t, err)
}

func TestInFlightFetchCannotOverwriteAfterInvalidate(t *testing.T) {
	c := New(Config{StaleTime: time.Hour}, zap.NewNop())
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Fetch(context.Background(), c, studentsKey, func(ctx context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"before mutation"}, nil
		})
	}()

	<-started
	c.Invalidate(context.Background(), "students")
	close(release)
	<-done

	var calls int32
	res, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"after mutation"}, nil))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"after mutation"}, res.Data)
}

func TestInFlightFetchCannotRepopulateAfterClear(t *testing.T) {
	store := newMemoryPersister()
	c := New(Config{StaleTime: time.Hour, PersistTTL: time.Hour}, zap.NewNop(), WithPersister(store))
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Fetch(context.Background(), c, studentsKey, func(ctx context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"previous user"}, nil
		})
	}()

	<-started
	c.Clear(context.Background(), studentsKey.Scope)
	close(release)
	<-done

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, store.len())

	var calls int32
	res, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"next user"}, nil))
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"next user"}, res.Data)
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	c := New(Config{StaleTime: time.Hour}, zap.NewNop())
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	fn := func(ctx context.Context) ([]string, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []string{"amina"}, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := Fetch(leaderCtx, c, studentsKey, fn)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		res Result[[]string]
		err error
	}
	follower := make(chan outcome, 1)
	go func() {
		res, err := Fetch(context.Background(), c, studentsKey, fn)
		follower <- outcome{res, err}
	}()

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	time.Sleep(10 * time.Millisecond)
	close(release)

	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, StatusSuccess, got.res.Status)
	assert.Equal(t, []string{"amina"}, got.res.Data)
	assert.Equal(t, StatusSuccess, c.State(studentsKey).Status)
}

func TestPersistedTierSurvivesNewClient(t *testing.T) {
	store := newMemoryPersister()
	var calls int32

	c1 := New(Config{StaleTime: time.Minute, PersistTTL: time.Minute}, zap.NewNop(), WithPersister(store))
	_, err := Fetch(context.Background(), c1, studentsKey, countingFetcher(&calls, []string{"amina"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, store.len())

	c2 := New(Config{StaleTime: time.Minute, PersistTTL: time.Minute}, zap.NewNop(), WithPersister(store))
	res, err := Fetch(context.Background(), c2, studentsKey, countingFetcher(&calls, []string{"fresh"}, nil))
	require.NoError(t, err)
	assert.True(t, res.CacheHit)
	assert.Equal(t, []string{"amina"}, res.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	c2.Invalidate(context.Background(), "students")
	assert.Equal(t, 0, store.len())
}

func TestClearOnlyTouchesScope(t *testing.T) {
	store := newMemoryPersister()
	c := New(Config{StaleTime: time.Minute}, zap.NewNop(), WithPersister(store))
	var calls int32
	other := Key{Scope: "user-2", Resource: "students", Params: "all"}

	_, _ = Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"a"}, nil))
	_, _ = Fetch(context.Background(), c, other, countingFetcher(&calls, []string{"b"}, nil))
	require.Equal(t, 2, c.Len())

	c.Clear(context.Background(), "user-1")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, StatusIdle, c.State(studentsKey).Status)
	assert.Equal(t, StatusSuccess, c.State(other).Status)
	assert.Equal(t, 1, store.len())
}

func TestMutate(t *testing.T) {
	c := New(Config{StaleTime: time.Hour}, zap.NewNop())
	var calls int32
	_, _ = Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, []string{"a"}, nil))

	var gotErr error
	err := c.Mutate(context.Background(), MutationOptions{
		Invalidates: []string{"students"},
		OnError:     func(err error) { gotErr = err },
	}, func(ctx context.Context) error { return errors.New("email already taken") })
	require.Error(t, err)
	assert.EqualError(t, gotErr, "email already taken")
	assert.False(t, c.State(studentsKey).Stale)

	succeeded := false
	err = c.Mutate(context.Background(), MutationOptions{
		Invalidates: []string{"students"},
		Resets:      []string{"student"},
		OnSuccess:   func() { succeeded = true },
	}, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.True(t, succeeded)
	assert.True(t, c.State(studentsKey).Stale)
}

func TestClosedClientRejectsReads(t *testing.T) {
	c := New(Config{}, nil)
	c.Close()
	var calls int32
	_, err := Fetch(context.Background(), c, studentsKey, countingFetcher(&calls, nil, nil))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLoadUsesScopeAndRefresh(t *testing.T) {
	c := New(Config{StaleTime: time.Minute}, zap.NewNop())
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	ctx := WithScope(context.Background(), "u1")
	v, f, err := Load(ctx, c, "students", "", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.False(t, f.CacheHit)

	v, f, err = Load(ctx, c, "students", "", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, f.CacheHit)

	v, _, err = Load(WithScope(context.Background(), "u2"), c, "students", "", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "scopes do not share entries")

	v, _, err = Load(WithRefresh(ctx), c, "students", "", fn)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestLoadReportsStaleMessage(t *testing.T) {
	c := New(Config{StaleTime: 0}, zap.NewNop())
	ctx := WithScope(context.Background(), "u1")
	_, _, err := Load(ctx, c, "books", "", func(context.Context) (string, error) { return "first", nil })
	require.NoError(t, err)

	v, f, err := Load(ctx, c, "books", "", func(context.Context) (string, error) {
		return "", appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")
	})
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.True(t, f.Stale)
	assert.Equal(t, "no response received from server", f.Message)
}

func TestLoadWithoutClientCallsThrough(t *testing.T) {
	v, _, err := Load(context.Background(), nil, "x", "", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
