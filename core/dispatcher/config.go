package dispatcher

import (
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/static"
)

// Config holds dispatcher settings.
type Config struct {
	// MaxConcurrent bounds requests in flight. Zero means unlimited.
	MaxConcurrent int64 `env:"DISPATCH_MAX_CONCURRENT" envDefault:"0"`
	Request       request.Config
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMiddleware appends middleware to the pre-routing chain.
func WithMiddleware(mw ...handler.Middleware) Option {
	return func(d *Dispatcher) {
		d.chain.Use(mw...)
	}
}

// WithSessions sets the session manager.
func WithSessions(m *session.Manager) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.sessions = m
		}
	}
}

// WithStatic sets the static file fallback. Nil disables it.
func WithStatic(f *static.Fallback) Option {
	return func(d *Dispatcher) {
		d.static = f
	}
}

// WithErrorHandler replaces the function turning failures into responses.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.errorHandler = h
		}
	}
}

// WithMaxConcurrent bounds the number of requests dispatched at once.
// Waiting requests give up with 503 when their context ends.
func WithMaxConcurrent(n int64) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.sem = semaphore.NewWeighted(n)
		} else {
			d.sem = nil
		}
	}
}

// WithRequestOptions sets options used when parsing requests.
func WithRequestOptions(opts ...request.Option) Option {
	return func(d *Dispatcher) {
		d.requestOpts = append(d.requestOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}
