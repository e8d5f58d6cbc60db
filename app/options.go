package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/server"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/template"
	"github.com/dmitrymomot/skiff/integration/database/pg"
)

// Option configures an App. Options run before the default components are
// built, so anything set here replaces the config-driven default.
type Option func(*App) error

// Worker is a background job started by Run next to the server.
type Worker func(ctx context.Context) func() error

// WithLogger sets the logger used by the app and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithServer replaces the config-driven HTTP server.
func WithServer(srv *server.Server) Option {
	return func(a *App) error {
		if srv == nil {
			return errors.New("server cannot be nil")
		}
		a.server = srv
		return nil
	}
}

// WithSessionManager replaces the config-driven session manager.
func WithSessionManager(m *session.Manager) Option {
	return func(a *App) error {
		if m == nil {
			return errors.New("session manager cannot be nil")
		}
		a.sessions = m
		return nil
	}
}

// WithSessionStore keeps the config-driven session manager but persists
// sessions in store.
func WithSessionStore(store session.Store) Option {
	return func(a *App) error {
		if store == nil {
			return errors.New("session store cannot be nil")
		}
		a.sessionStore = store
		return nil
	}
}

// WithRenderer sets the template renderer used by RenderTemplate.
func WithRenderer(r *template.Renderer) Option {
	return func(a *App) error {
		if r == nil {
			return errors.New("renderer cannot be nil")
		}
		a.renderer = r
		return nil
	}
}

// WithDB attaches a relational database. Run closes it on shutdown.
func WithDB(db *pg.DB) Option {
	return func(a *App) error {
		if db == nil {
			return errors.New("database cannot be nil")
		}
		a.db = db
		return nil
	}
}

// WithMiddleware appends global middleware.
func WithMiddleware(mw ...handler.Middleware) Option {
	return func(a *App) error {
		a.middleware = append(a.middleware, mw...)
		return nil
	}
}

// WithWorker registers a background job for Run.
func WithWorker(w Worker) Option {
	return func(a *App) error {
		if w == nil {
			return errors.New("worker cannot be nil")
		}
		a.workers = append(a.workers, w)
		return nil
	}
}
