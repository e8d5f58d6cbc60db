package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Second,
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, testConfig.Validate())

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		assert.ErrorIs(t, cfg.Validate(), ratelimiter.ErrInvalidConfig)
	}
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.NewBucket(nil, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	_, err = ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now)), testConfig)
	require.NoError(t, err)

	for i := 2; i >= 0; i-- {
		res, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
		assert.Zero(t, res.RetryAfter())
	}

	res, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Second), res.ResetAt)

	t.Run("other keys have their own bucket", func(t *testing.T) {
		res, err := limiter.Allow(ctx, "someone-else")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	clock.Advance(1500 * time.Millisecond)
	res, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	// Half an interval carried over from the previous advance.
	clock.Advance(500 * time.Millisecond)
	res, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	clock.Advance(time.Hour)
	res, err = limiter.AllowN(ctx, "client", 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "refill never exceeds capacity")
	assert.Equal(t, 0, res.Remaining)
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now)), testConfig)
	require.NoError(t, err)

	_, err = limiter.AllowN(ctx, "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = limiter.AllowN(ctx, "k", 4)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := limiter.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	res, err = limiter.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 1, res.Remaining, "denied request takes nothing")

	res, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), testConfig)
	require.NoError(t, err)

	_, err = limiter.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	require.NoError(t, limiter.Reset(ctx, "k"))

	res, err := limiter.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestBucket_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := ratelimiter.Config{Capacity: 100, RefillRate: 1, RefillInterval: time.Hour}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
	require.NoError(t, err)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				res, err := limiter.Allow(ctx, "shared")
				if err == nil && res.Allowed() {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowed.Load())
}

func TestMemoryStore_RemoveStale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(clock.Now),
		ratelimiter.WithStaleAfter(time.Minute),
	)

	_, err := store.Take(ctx, "old", 1, testConfig)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	_, err = store.Take(ctx, "fresh", 1, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 1, store.RemoveStale())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops with context", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- store.Run(ctx)() }()

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Run did not return")
		}
	})

	t.Run("disabled cleanup waits for context", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.NoError(t, store.Run(ctx)())
	})
}
