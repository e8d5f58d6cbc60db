package redis_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/integration/database/redis"
)

type entry struct {
	value []byte
	ttl   time.Duration
}

// fakeRedis implements the commands the store uses; any other call panics on
// the nil embedded interface.
type fakeRedis struct {
	goredis.Cmdable

	mu      sync.Mutex
	data    map[string]entry
	pingErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]entry)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(string(e.value), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = entry{value: value.([]byte), ttl: ttl}
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", f.pingErr)
}

func TestSessionStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		store := redis.NewSessionStore(client, "")

		sess := session.New("abc", time.Hour)
		sess.Set("user", "ada")
		sess.Set("visits", 3)
		require.NoError(t, store.Save(ctx, sess))

		e, ok := client.data["session:abc"]
		require.True(t, ok)
		assert.InDelta(t, time.Hour, e.ttl, float64(time.Second))

		got, err := store.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "ada", got.GetString("user"))
		visits, _ := got.Get("visits")
		assert.Equal(t, float64(3), visits)
		assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Millisecond)
		assert.False(t, got.IsModified())
	})

	t.Run("no expiry", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		store := redis.NewSessionStore(client, "s:")
		require.NoError(t, store.Save(ctx, session.New("forever", 0)))
		assert.Zero(t, client.data["s:forever"].ttl)

		got, err := store.Get(ctx, "forever")
		require.NoError(t, err)
		assert.True(t, got.ExpiresAt.IsZero())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := redis.NewSessionStore(newFakeRedis(), "").Get(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("corrupt record", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		client.data["session:bad"] = entry{value: []byte("{")}
		_, err := redis.NewSessionStore(client, "").Get(ctx, "bad")
		assert.ErrorIs(t, err, redis.ErrDecodeSession)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		store := redis.NewSessionStore(client, "")
		require.NoError(t, store.Save(ctx, session.New("gone", 0)))
		require.NoError(t, store.Delete(ctx, "gone"))
		_, err := store.Get(ctx, "gone")
		assert.ErrorIs(t, err, session.ErrNotFound)

		n, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("works behind the session manager", func(t *testing.T) {
		t.Parallel()
		store := redis.NewSessionStore(newFakeRedis(), "")
		m := session.NewManager(store)

		first, err := m.Resolve(ctx, nil, nil)
		require.NoError(t, err)
		first.Set("n", "1")
		require.NoError(t, m.Save(ctx, first))

		again, err := m.Resolve(ctx, map[string]string{m.CookieName(): first.ID}, nil)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "1", again.GetString("n"))
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := newFakeRedis()
	assert.NoError(t, redis.Healthcheck(client)(ctx))

	client.pingErr = errors.New("connection refused")
	assert.ErrorIs(t, redis.Healthcheck(client)(ctx), redis.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := redis.Connect(ctx, redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(ctx, redis.Config{ConnectionURL: "http://nope"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 3, RetryInterval: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.NoError(t, redis.Healthcheck(client)(ctx))
}
