package app

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/skiff/core/config"
	"github.com/dmitrymomot/skiff/core/dispatcher"
	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/core/router"
	"github.com/dmitrymomot/skiff/core/server"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/static"
	"github.com/dmitrymomot/skiff/core/template"
	"github.com/dmitrymomot/skiff/integration/database/pg"
)

// App is the application object: routes, middleware, sessions, templates
// and an optional database behind one dispatcher and one HTTP server.
type App struct {
	config       Config
	router       *router.Router
	dispatcher   *dispatcher.Dispatcher
	server       *server.Server
	sessions     *session.Manager
	sessionStore session.Store
	renderer     *template.Renderer
	db           *pg.DB
	middleware   []handler.Middleware
	workers      []Worker
	logger       *slog.Logger
}

// New loads Config from the environment and builds an App.
func New(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds an App from cfg. Components not supplied through
// options are created from their section of cfg.
func NewFromConfig(cfg Config, opts ...Option) (*App, error) {
	a := &App{
		config: cfg,
		router: router.New(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.logger == nil {
		a.logger = logger.NewFromConfig(cfg.Log)
	}

	if a.sessions == nil {
		a.sessions = session.NewFromConfig(cfg.Session, a.sessionStore, session.WithLogger(a.logger))
	}

	if a.renderer == nil {
		a.renderer = template.NewFromConfig(cfg.Template)
	}

	if a.server == nil {
		srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = srv
	}

	a.dispatcher = dispatcher.NewFromConfig(cfg.Dispatch, a.router,
		dispatcher.WithSessions(a.sessions),
		dispatcher.WithStatic(static.NewFromConfig(cfg.Static, static.WithLogger(a.logger))),
		dispatcher.WithMiddleware(a.middleware...),
		dispatcher.WithLogger(a.logger),
	)

	return a, nil
}

// Route registers h for pattern. Without methods the route answers GET.
// It panics on an invalid pattern or method.
func (a *App) Route(pattern string, h handler.HandlerFunc, methods ...string) {
	a.router.Handle(pattern, h, methods...)
}

// Get registers h for GET requests to pattern.
func (a *App) Get(pattern string, h handler.HandlerFunc) {
	a.router.Get(pattern, h)
}

// Post registers h for POST requests to pattern.
func (a *App) Post(pattern string, h handler.HandlerFunc) {
	a.router.Post(pattern, h)
}

// Use appends global middleware. It is not safe to call while serving.
func (a *App) Use(mw ...handler.Middleware) {
	a.dispatcher.Use(mw...)
}

// RenderTemplate renders the named template into an HTML response.
func (a *App) RenderTemplate(name string, vars map[string]any) (*response.Response, error) {
	return a.renderer.Response(name, vars)
}

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// DB returns the attached database or nil.
func (a *App) DB() *pg.DB {
	return a.db
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the configuration the app was built from.
func (a *App) Config() Config {
	return a.config
}

// Handler returns the http.Handler serving the app.
func (a *App) Handler() http.Handler {
	return a.dispatcher
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.dispatcher.ServeHTTP(w, r)
}

// Addr returns the address the server listens on.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Run serves HTTP and runs the session cleanup and registered workers until
// ctx is canceled or one of them fails. The database is closed afterwards.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.dispatcher))
	g.Go(a.sessions.Run(ctx))
	for _, w := range a.workers {
		g.Go(w(ctx))
	}

	err := g.Wait()
	if a.db != nil {
		if cerr := a.db.Close(context.Background()); cerr != nil {
			a.logger.Error("failed to close database", logger.Component("app"), logger.Error(cerr))
		}
	}
	return err
}
