package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/skiff/core/logger"
)

// Server runs an http.Handler with graceful shutdown. Safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	addr     string
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger

	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
}

// New creates a server listening on addr.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address once the server is listening, otherwise the
// configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start listens and serves until ctx is canceled or serving fails.
// It returns ctx.Err() on cancellation; call Stop to drain connections.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		return ErrNilHandler
	}

	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s: %w", ErrListen, s.addr, err)
	}
	srv := &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		BaseContext:    func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.server, s.listener = srv, ln
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "server started",
		logger.Component("server"),
		slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.reset(srv)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the server down, waiting up to the shutdown timeout for
// in-flight requests. It is a no-op when the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Info("shutting down server",
		logger.Component("server"),
		slog.Duration("timeout", s.shutdown))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := srv.Shutdown(ctx)
	s.reset(srv)
	if err != nil {
		s.logger.Error("server shutdown failed", logger.Component("server"), logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}

	s.logger.Info("server stopped", logger.Component("server"))
	return nil
}

// Run returns a function for errgroup that serves until ctx is done and then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, handler)
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return s.Stop()
		}
		return err
	}
}

func (s *Server) reset(srv *http.Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == srv {
		s.server, s.listener = nil, nil
	}
}
