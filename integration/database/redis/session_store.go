package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/skiff/core/session"
)

// DefaultSessionPrefix namespaces session keys.
const DefaultSessionPrefix = "session:"

// SessionStore keeps sessions as JSON strings. Keys expire with the session,
// so DeleteExpired has nothing to do.
//
// Values round-trip through JSON: numbers come back as float64 and nested
// structs as maps.
type SessionStore struct {
	client goredis.Cmdable
	prefix string
}

// NewSessionStore creates a store. An empty prefix uses DefaultSessionPrefix.
func NewSessionStore(client goredis.Cmdable, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

type sessionRecord struct {
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Get implements session.Store.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(ErrDecodeSession, err)
	}
	return session.Restore(id, rec.Values, rec.CreatedAt, rec.ExpiresAt), nil
}

// Save implements session.Store.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return s.Delete(ctx, sess.ID)
		}
	}

	raw, err := json.Marshal(sessionRecord{
		Values:    sess.Values(),
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return errors.Join(ErrEncodeSession, err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, raw, ttl).Err()
}

// Delete implements session.Store.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}

// DeleteExpired implements session.Store.
func (s *SessionStore) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

var _ session.Store = (*SessionStore)(nil)
