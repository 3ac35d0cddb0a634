package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, fetch Fetcher) *Cache {
	t.Helper()
	c, err := NewCache(fetch, Options{Size: 8})
	require.NoError(t, err)
	return c
}

func TestCache_LoadCachesSuccess(t *testing.T) {
	var calls atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		return []string{"a", "b"}, nil
	})

	first := c.Load(context.Background(), "/api/donations")
	require.Equal(t, StatusSuccess, first.Status)
	v, ok := Value[[]string](first)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	second := c.Load(context.Background(), "/api/donations")
	assert.Equal(t, StatusSuccess, second.Status)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCache_ConcurrentLoadsShareOneFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		<-release
		return 42, nil
	})

	const readers = 5
	var wg sync.WaitGroup
	results := make([]Resource, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Load(context.Background(), "/api/events")
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, StatusLoading, c.Peek("/api/events").Status)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		assert.Equal(t, StatusSuccess, r.Status)
		assert.Equal(t, 42, r.Value)
	}
}

func TestCache_FetchErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	})

	var seen []Status
	var mu sync.Mutex
	cancel := c.Observe("/api/issues", func(r Resource) {
		mu.Lock()
		seen = append(seen, r.Status)
		mu.Unlock()
	})
	defer cancel()

	r := c.Load(context.Background(), "/api/issues")
	require.Equal(t, StatusError, r.Status)
	assert.EqualError(t, r.Err, "connection refused")
	assert.EqualValues(t, 1, calls.Load())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusLoading, StatusError}, seen)
}

func TestCache_InvalidateRefetchesObservedKeys(t *testing.T) {
	var calls atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		return int(calls.Add(1)), nil
	})

	cancel := c.Observe("/api/donations", func(Resource) {})
	defer cancel()

	require.Equal(t, 1, c.Load(context.Background(), "/api/donations").Value)
	c.Load(context.Background(), "/api/events")

	keys := c.Invalidate(context.Background(), Prefix("/api/donations"))
	assert.Equal(t, []string{"/api/donations"}, keys)
	c.Wait()

	got := c.Peek("/api/donations")
	assert.Equal(t, StatusSuccess, got.Status)
	assert.False(t, got.Stale)
	assert.Equal(t, 3, got.Value)

	// unobserved keys are only marked stale
	assert.False(t, c.Peek("/api/events").Stale)
	c.Invalidate(context.Background(), Exact("/api/events"))
	c.Wait()
	assert.True(t, c.Peek("/api/events").Stale)
	assert.EqualValues(t, 3, calls.Load())

	fresh := c.Load(context.Background(), "/api/events")
	assert.False(t, fresh.Stale)
	assert.Equal(t, 4, fresh.Value)
}

func TestCache_ObservedEntriesSurviveEviction(t *testing.T) {
	var calls atomic.Int32
	c, err := NewCache(func(ctx context.Context, key string) (any, error) {
		return int(calls.Add(1)), nil
	}, Options{Size: 2})
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []Resource
	cancelA := c.Observe("/api/donations", func(r Resource) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r)
	})
	cancelB := c.Observe("/api/events", func(Resource) {})
	defer cancelB()
	cancelC := c.Observe("/api/issues", func(Resource) {})
	defer cancelC()
	assert.Equal(t, 3, c.Len())

	require.Equal(t, 1, c.Load(context.Background(), "/api/donations").Value)

	keys := c.Invalidate(context.Background(), Exact("/api/donations"))
	assert.Equal(t, []string{"/api/donations"}, keys)
	c.Wait()

	got := c.Peek("/api/donations")
	assert.Equal(t, StatusSuccess, got.Status)
	assert.False(t, got.Stale)
	assert.Equal(t, 2, got.Value)

	mu.Lock()
	require.NotEmpty(t, seen)
	assert.Equal(t, 2, seen[len(seen)-1].Value)
	mu.Unlock()

	// once released, the entry is an ordinary LRU member again
	cancelA()
	c.Load(context.Background(), "/api/help-requests")
	c.Load(context.Background(), "/api/leaderboard")
	assert.Equal(t, StatusIdle, c.Peek("/api/donations").Status)
}

func TestCache_RepeatedInvalidationConverges(t *testing.T) {
	var calls atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		return int(calls.Add(1)), nil
	})
	cancel := c.Observe("/api/donations", func(Resource) {})
	defer cancel()

	c.Load(context.Background(), "/api/donations")
	c.Invalidate(context.Background(), Exact("/api/donations"))
	c.Invalidate(context.Background(), Exact("/api/donations"))
	c.Wait()

	got := c.Peek("/api/donations")
	assert.Equal(t, StatusSuccess, got.Status)
	assert.False(t, got.Stale)
}

func TestCache_LateResultDoesNotOverwriteNewer(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		if calls.Add(1) == 1 {
			<-gate
			return "old", nil
		}
		return "new", nil
	})
	cancel := c.Observe("/api/events", func(Resource) {})
	defer cancel()

	done := make(chan Resource)
	go func() { done <- c.Load(context.Background(), "/api/events") }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate(context.Background(), Exact("/api/events"))
	c.Wait()
	require.Equal(t, "new", c.Peek("/api/events").Value)

	close(gate)
	late := <-done
	assert.Equal(t, "new", late.Value)

	got := c.Peek("/api/events")
	assert.Equal(t, "new", got.Value)
	assert.False(t, got.Stale)
	assert.False(t, got.Fetching)
}

func TestCache_CancelledObserverMissesLateResults(t *testing.T) {
	gate := make(chan struct{})
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		<-gate
		return "value", nil
	})

	var delivered atomic.Int32
	cancel := c.Observe("/api/help-requests", func(r Resource) {
		if r.Status == StatusSuccess {
			delivered.Add(1)
		}
	})

	done := make(chan struct{})
	go func() {
		c.Load(context.Background(), "/api/help-requests")
		close(done)
	}()
	require.Eventually(t, func() bool {
		return c.Peek("/api/help-requests").Status == StatusLoading
	}, time.Second, time.Millisecond)

	cancel()
	close(gate)
	<-done

	assert.Zero(t, delivered.Load())
	assert.Equal(t, StatusSuccess, c.Peek("/api/help-requests").Status)
}

func TestCache_LoadReturnsOnContextCancel(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		<-gate
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r := c.Load(ctx, "/api/leaderboard")
	assert.Equal(t, StatusLoading, r.Status)
}

func TestPrefix(t *testing.T) {
	m := Prefix("/api/events/")
	assert.True(t, m.Match("/api/events"))
	assert.True(t, m.Match("/api/events/3/participants"))
	assert.False(t, m.Match("/api/eventsx"))
	assert.False(t, m.Match("/api/donations"))
}

func TestNewCache_RequiresFetcher(t *testing.T) {
	_, err := NewCache(nil, Options{})
	assert.Error(t, err)
}
