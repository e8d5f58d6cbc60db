package ratelimiter

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultStaleAfter      = time.Hour
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	staleAfter      time.Duration
	now             func() time.Time
	logger          *slog.Logger
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale buckets are dropped by Run.
// Zero disables cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithStaleAfter sets how long an untouched bucket survives cleanup.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// WithMemoryStoreLogger sets the logger for cleanup.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		cleanupInterval: defaultCleanupInterval,
		staleAfter:      defaultStaleAfter,
		now:             time.Now,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Take implements Store.
func (ms *MemoryStore) Take(_ context.Context, key string, n int, cfg Config) (State, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}
	b.lastAccess = now

	// Whole intervals only; the remainder carries over to the next call.
	if intervals := int64(now.Sub(b.lastRefill) / cfg.RefillInterval); intervals > 0 {
		// Cap so a long idle period cannot overflow the multiplication.
		add := min(intervals, int64(cfg.Capacity/cfg.RefillRate+1)) * int64(cfg.RefillRate)
		b.tokens = int(min(int64(b.tokens)+add, int64(cfg.Capacity)))
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
	}

	st := State{ResetAt: b.lastRefill.Add(cfg.RefillInterval)}
	if b.tokens >= n {
		b.tokens -= n
		st.Allowed = true
	}
	st.Remaining = b.tokens
	return st, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Len returns the number of tracked keys.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

// RemoveStale drops buckets not touched within the stale window and returns
// how many were removed.
func (ms *MemoryStore) RemoveStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
			removed++
		}
	}
	return removed
}

// Run returns a function for errgroup that periodically removes stale
// buckets until ctx is done.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		if ms.cleanupInterval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := ms.RemoveStale(); n > 0 {
					ms.logger.DebugContext(ctx, "removed stale rate limit buckets",
						slog.Int("removed", n))
				}
			}
		}
	}
}
