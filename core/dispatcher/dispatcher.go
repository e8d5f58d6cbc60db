package dispatcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/core/router"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/static"
)

const notFoundBody = "Not Found"

// Dispatcher turns one inbound request into one response:
// build request, resolve session, run middleware, match route, then the
// handler, the static fallback or a 404. Any failure along the way, including
// a panic, becomes an error response.
type Dispatcher struct {
	router       *router.Router
	chain        handler.Chain
	sessions     *session.Manager
	static       *static.Fallback
	errorHandler handler.ErrorHandler
	requestOpts  []request.Option
	sem          *semaphore.Weighted
	logger       *slog.Logger
}

// New creates a dispatcher for the routes in r. By default sessions live in
// memory and files are served from ./static under /static/.
func New(r *router.Router, opts ...Option) *Dispatcher {
	if r == nil {
		r = router.New()
	}
	d := &Dispatcher{
		router:       r,
		sessions:     session.NewManager(nil),
		static:       static.New(static.DefaultRoot),
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromConfig creates a dispatcher from configuration.
func NewFromConfig(cfg Config, r *router.Router, opts ...Option) *Dispatcher {
	base := []Option{
		WithMaxConcurrent(cfg.MaxConcurrent),
		WithRequestOptions(cfg.Request.Options()...),
	}
	return New(r, append(base, opts...)...)
}

// Use appends middleware to the chain. Call it before serving requests.
func (d *Dispatcher) Use(mw ...handler.Middleware) {
	d.chain.Use(mw...)
}

// Router returns the route registry.
func (d *Dispatcher) Router() *router.Router {
	return d.router
}

// Sessions returns the session manager.
func (d *Dispatcher) Sessions() *session.Manager {
	return d.sessions
}

// Dispatch runs the pipeline for a raw transport request.
func (d *Dispatcher) Dispatch(ctx context.Context, in request.Input) Result {
	start := time.Now()
	method, target := in.Method, in.Target
	path, _, _ := strings.Cut(target, "?")

	if err := d.acquire(ctx); err != nil {
		return d.settle(ctx, start, stub(method, path), d.fail(stub(method, path), err))
	}
	defer d.release()

	req, err := request.Build(ctx, in, d.requestOpts...)
	if err != nil {
		fallback := stub(method, path)
		return d.settle(ctx, start, fallback, d.fail(fallback, err))
	}
	return d.settle(ctx, start, req, d.dispatch(req))
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	var res Result
	req := stub(r.Method, r.URL.EscapedPath())

	if err := d.acquire(ctx); err != nil {
		res = d.settle(ctx, start, req, d.fail(req, err))
	} else {
		defer d.release()
		built, err := request.FromHTTP(r, d.requestOpts...)
		if err != nil {
			res = d.settle(ctx, start, req, d.fail(req, err))
		} else {
			req = built
			res = d.settle(ctx, start, req, d.dispatch(req))
		}
	}

	d.write(w, req, res)
}

// dispatch walks the pipeline states for a built request.
func (d *Dispatcher) dispatch(req *request.Request) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = d.fail(req, &panicError{value: p, stack: debug.Stack()})
		}
	}()

	resp := response.New()

	sess, err := d.sessions.Resolve(req.Context(), req.Cookies, resp)
	if err != nil {
		return d.fail(req, err)
	}
	req.Session = sess

	out, err := d.chain.Run(req, resp)
	if err != nil {
		return d.fail(req, err)
	}
	if out != nil {
		return Result{Response: out, Outcome: OutcomeMiddleware}
	}

	if route, params, ok := d.router.Match(req.Method, req.Path); ok {
		v, err := route.Handler(req, params)
		if err != nil {
			res = d.fail(req, err)
			res.Route = route
			return res
		}
		return Result{Response: toResponse(v, resp), Outcome: OutcomeRoute, Route: route}
	}

	if d.static != nil {
		served, err := d.static.Serve(req, resp)
		if err != nil {
			return d.fail(req, err)
		}
		if served {
			return Result{Response: resp, Outcome: OutcomeStatic}
		}
	}

	resp.Status = http.StatusNotFound
	resp.SetText(notFoundBody)
	return Result{Response: resp, Outcome: OutcomeNotFound}
}

// toResponse places a handler result into the default response unless the
// handler returned a complete response of its own.
func toResponse(v any, resp *response.Response) *response.Response {
	if r, ok := v.(*response.Response); ok {
		if r != nil {
			return r
		}
		v = nil
	}
	resp.SetBody(v)
	return resp
}

func (d *Dispatcher) fail(req *request.Request, err error) Result {
	resp := d.errorHandler(req, err)
	if resp == nil {
		resp = response.Error(err)
	}
	return Result{Response: resp, Outcome: OutcomeFailed, Err: err}
}

// settle persists the session and logs the completed request.
func (d *Dispatcher) settle(ctx context.Context, start time.Time, req *request.Request, res Result) Result {
	if req.Session != nil {
		if err := d.sessions.Save(ctx, req.Session); err != nil {
			d.logger.ErrorContext(ctx, "failed to save session",
				logger.Component("dispatcher"),
				logger.RequestID(req.RequestID()),
				logger.Error(err),
			)
		}
	}

	attrs := []slog.Attr{
		logger.Component("dispatcher"),
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.StatusCode(res.Response.Status),
		logger.Outcome(res.Outcome.String()),
		logger.Latency(time.Since(start)),
		logger.BytesOut(len(res.Response.Body())),
		logger.RequestID(req.RequestID()),
		logger.RemoteAddr(req.RemoteAddr),
	}
	if res.Route != nil {
		attrs = append(attrs, logger.Route(res.Route.Pattern))
	}

	level := slog.LevelInfo
	if res.Outcome == OutcomeFailed {
		level = slog.LevelError
		attrs = append(attrs, logger.Error(res.Err))
		var pe PanicError
		if errors.As(res.Err, &pe) {
			attrs = append(attrs, logger.StackTrace(pe.Stack()))
		}
	}
	d.logger.LogAttrs(ctx, level, "request completed", attrs...)
	return res
}

func (d *Dispatcher) write(w http.ResponseWriter, req *request.Request, res Result) {
	err := res.Response.Write(w)
	if err == nil {
		return
	}

	d.logger.ErrorContext(req.Context(), "failed to write response",
		logger.Component("dispatcher"),
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.RequestID(req.RequestID()),
		logger.Error(err),
	)
	// Write validates cookies before touching w, so a fallback can still be sent.
	if errors.Is(err, response.ErrInvalidResponse) {
		_ = response.Error(err).Write(w)
	}
}

func (d *Dispatcher) acquire(ctx context.Context) error {
	if d.sem == nil {
		return nil
	}
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return response.ErrServiceUnavailable.WithError(err)
	}
	return nil
}

func (d *Dispatcher) release() {
	if d.sem != nil {
		d.sem.Release(1)
	}
}

func defaultErrorHandler(_ *request.Request, err error) *response.Response {
	return response.Error(err)
}

// stub is the minimal request used for logging and error handling when the
// real request could not be built.
func stub(method, path string) *request.Request {
	if path == "" {
		path = "/"
	}
	return &request.Request{Method: strings.ToUpper(method), Path: path}
}
