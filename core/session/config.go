package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/skiff/core/cookie"
)

// DefaultCookieName is the cookie carrying the session id.
const DefaultCookieName = "SESSION_ID"

// Config holds session manager configuration.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"SESSION_ID"`
	// TTL is the session lifetime. Zero keeps sessions forever.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"0"`
	// CleanupInterval is how often Run removes expired sessions.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
	// Cookie sets attributes of the session cookie.
	Cookie cookie.Config `envPrefix:"SESSION_"`
}

// DefaultConfig returns a configuration with non-expiring sessions and a
// bare "SESSION_ID=<id>; Path=/" cookie.
func DefaultConfig() Config {
	return Config{
		CookieName:      DefaultCookieName,
		CleanupInterval: 10 * time.Minute,
		Cookie:          cookie.DefaultConfig(),
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithCookieName sets the name of the session cookie.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cfg.CookieName = name
		}
	}
}

// WithTTL sets the session time-to-live. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TTL = ttl
	}
}

// WithCleanupInterval sets how often expired sessions are removed by Run.
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.CleanupInterval = interval
	}
}

// WithCookieOptions appends attributes to the session cookie.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieOpts = append(m.cookieOpts, opts...)
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.generateID = fn
		}
	}
}

// WithLogger sets the logger used by the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
