package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/session"
)

func TestSession_Values(t *testing.T) {
	t.Parallel()

	s := session.New("abc", 0)
	assert.True(t, s.ExpiresAt.IsZero())
	assert.Equal(t, 0, s.Len())

	s.Set("name", "Ada")
	s.Set("count", 3)

	v, ok := s.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", v)
	assert.Equal(t, "Ada", s.GetString("name"))
	assert.Empty(t, s.GetString("count"))
	assert.Equal(t, []string{"count", "name"}, s.Keys())

	snapshot := s.Values()
	snapshot["name"] = "changed"
	assert.Equal(t, "Ada", s.GetString("name"))

	s.Delete("name")
	_, ok = s.Get("name")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestSession_Expiry(t *testing.T) {
	t.Parallel()

	s := session.New("abc", time.Minute)
	assert.False(t, s.IsExpired(time.Now()))
	assert.True(t, s.IsExpired(time.Now().Add(2*time.Minute)))

	forever := session.New("def", 0)
	assert.False(t, forever.IsExpired(time.Now().Add(100*365*24*time.Hour)))
}

func TestSession_Modified(t *testing.T) {
	t.Parallel()

	assert.True(t, session.New("a", 0).IsModified())

	restored := session.Restore("b", map[string]any{"k": "v"}, time.Now(), time.Time{})
	assert.False(t, restored.IsModified())
	assert.Equal(t, "v", restored.GetString("k"))

	restored.Delete("missing")
	assert.False(t, restored.IsModified())

	restored.Set("k", "w")
	assert.True(t, restored.IsModified())
}

func TestSession_ConcurrentUpdate(t *testing.T) {
	t.Parallel()

	s := session.New("abc", 0)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.Update("count", func(old any, ok bool) any {
				if !ok {
					return 1
				}
				return old.(int) + 1
			})
		}()
	}
	wg.Wait()

	v, _ := s.Get("count")
	assert.Equal(t, n, v)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := session.NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	s := session.New("abc", 0)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Same(t, s, got)

	expired := session.Restore("old", nil, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, store.Save(ctx, expired))

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.Equal(t, 0, store.Len())
}
