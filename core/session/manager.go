package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dchest/uniuri"

	"github.com/dmitrymomot/skiff/core/cookie"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/response"
)

const maxIDAttempts = 5

// Manager resolves session cookies to stored sessions and creates new ones.
// It is safe for concurrent use.
type Manager struct {
	store      Store
	cfg        Config
	cookieOpts []cookie.Option
	generateID func() string
	logger     *slog.Logger

	// mu serializes the lookup-or-create sequence in Resolve.
	mu sync.Mutex
}

// NewManager creates a session manager backed by store.
// A nil store falls back to a new MemoryStore.
func NewManager(store Store, opts ...Option) *Manager {
	return NewFromConfig(DefaultConfig(), store, opts...)
}

// NewFromConfig creates a session manager from configuration.
// Options are applied after the configuration values.
func NewFromConfig(cfg Config, store Store, opts ...Option) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	m := &Manager{
		store:      store,
		cfg:        cfg,
		generateID: func() string { return uniuri.NewLen(IDLength) },
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying session store.
func (m *Manager) Store() Store {
	return m.store
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// Resolve returns the session named by the session cookie in cookies.
// When the cookie is missing, unknown or points to an expired session, a new
// empty session is registered and a Set-Cookie directive for it is added to resp.
func (m *Manager) Resolve(ctx context.Context, cookies map[string]string, resp *response.Response) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id := cookies[m.cfg.CookieName]; id != "" {
		s, err := m.store.Get(ctx, id)
		switch {
		case err == nil && !s.IsExpired(time.Now()):
			return s, nil
		case err == nil:
			if err := m.store.Delete(ctx, id); err != nil {
				m.logger.WarnContext(ctx, "failed to delete expired session",
					logger.Component("session"),
					logger.Error(err),
				)
			}
		case !errors.Is(err, ErrNotFound):
			return nil, errors.Join(ErrLoadSession, err)
		}
	}

	s, err := m.create(ctx)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		resp.SetCookie(m.cfg.CookieName, s.ID, m.cookieOptions()...)
	}
	return s, nil
}

// create registers a new session under an id not yet known to the store.
// Callers must hold m.mu.
func (m *Manager) create(ctx context.Context) (*Session, error) {
	for range maxIDAttempts {
		id := m.generateID()
		_, err := m.store.Get(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, errors.Join(ErrLoadSession, err)
		}

		s := New(id, m.cfg.TTL)
		if err := m.store.Save(ctx, s); err != nil {
			return nil, errors.Join(ErrSaveSession, err)
		}
		s.markSaved()
		return s, nil
	}
	return nil, ErrIDGeneration
}

// Save persists s if it changed since it was loaded or last saved.
// For MemoryStore this only refreshes the map entry.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || !s.IsModified() {
		return nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	s.markSaved()
	return nil
}

// Destroy deletes s from the store and expires the session cookie on resp.
func (m *Manager) Destroy(ctx context.Context, s *Session, resp *response.Response) error {
	if s == nil {
		return nil
	}
	if err := m.store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	if resp != nil {
		resp.DeleteCookie(m.cfg.CookieName, m.cfg.Cookie.Options()...)
	}
	return nil
}

// Cleanup removes expired sessions from the store.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx)
	if err != nil {
		return n, errors.Join(ErrDeleteSession, err)
	}
	return n, nil
}

// Run returns a function that removes expired sessions every CleanupInterval
// until ctx is cancelled. It is compatible with errgroup.Group.Go.
// With expiry disabled the function just waits for cancellation.
func (m *Manager) Run(ctx context.Context) func() error {
	return func() error {
		if m.cfg.TTL <= 0 || m.cfg.CleanupInterval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(m.cfg.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := m.Cleanup(ctx)
				if err != nil {
					m.logger.ErrorContext(ctx, "session cleanup failed",
						logger.Component("session"),
						logger.Error(err),
					)
					continue
				}
				if n > 0 {
					m.logger.DebugContext(ctx, "expired sessions removed",
						logger.Component("session"),
						logger.SessionCount(n),
					)
				}
			}
		}
	}
}

func (m *Manager) cookieOptions() []cookie.Option {
	opts := m.cfg.Cookie.Options()
	if m.cfg.TTL > 0 && m.cfg.Cookie.MaxAge == 0 {
		opts = append(opts, cookie.WithMaxAge(int(m.cfg.TTL/time.Second)))
	}
	return append(opts, m.cookieOpts...)
}
