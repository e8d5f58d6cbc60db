package session

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// IDLength is the length of generated session ids.
const IDLength = 24

// Session is a server-side key/value map identified by an opaque id.
// Values are guarded by the session's own mutex, so a single session may be
// shared by concurrent requests presenting the same cookie.
type Session struct {
	ID        string
	CreatedAt time.Time
	// ExpiresAt is zero for sessions that never expire.
	ExpiresAt time.Time

	mu       sync.RWMutex
	values   map[string]any
	modified bool
}

// New creates an empty session. A positive ttl sets ExpiresAt.
func New(id string, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		values:    make(map[string]any),
		modified:  true,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// Restore rebuilds a session loaded from persistent storage.
// The restored session is not marked as modified.
func Restore(id string, values map[string]any, createdAt, expiresAt time.Time) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		values:    values,
	}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.modified = true
}

// Update applies fn to the value under key while holding the session lock,
// making read-modify-write sequences such as counters atomic.
func (s *Session) Update(key string, fn func(old any, ok bool) any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[key]
	v := fn(old, ok)
	s.values[key] = v
	s.modified = true
	return v
}

// Delete removes key from the session.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.modified = true
	}
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Values returns a snapshot copy of the stored values.
func (s *Session) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// IsExpired reports whether the session expired at the given time.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// IsModified reports whether the session changed since it was created,
// restored or last saved.
func (s *Session) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

func (s *Session) markSaved() {
	s.mu.Lock()
	s.modified = false
	s.mu.Unlock()
}
