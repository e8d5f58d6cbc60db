package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/skiff/core/handler"
)

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// Router keeps routes in registration order and matches requests against
// them. The first route whose pattern and method both match wins; there is no
// specificity ranking.
type Router struct {
	mu     sync.RWMutex
	routes []*Route
}

// New creates an empty router.
func New() *Router {
	return &Router{}
}

// Handle registers h for pattern and the given methods. Without methods the
// route answers GET only. It panics on an invalid pattern or method.
func (r *Router) Handle(pattern string, h handler.HandlerFunc, methods ...string) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}

	normalized := make([]string, len(methods))
	for i, m := range methods {
		upper := strings.ToUpper(m)
		if _, ok := knownMethods[upper]; !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, m))
		}
		normalized[i] = upper
	}

	route, err := newRoute(pattern, h, normalized)
	if err != nil {
		panic(err)
	}

	r.mu.Lock()
	r.routes = append(r.routes, route)
	r.mu.Unlock()
}

// Get registers a GET route.
func (r *Router) Get(pattern string, h handler.HandlerFunc) {
	r.Handle(pattern, h, http.MethodGet)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, h handler.HandlerFunc) {
	r.Handle(pattern, h, http.MethodPost)
}

// Put registers a PUT route.
func (r *Router) Put(pattern string, h handler.HandlerFunc) {
	r.Handle(pattern, h, http.MethodPut)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, h handler.HandlerFunc) {
	r.Handle(pattern, h, http.MethodDelete)
}

// Patch registers a PATCH route.
func (r *Router) Patch(pattern string, h handler.HandlerFunc) {
	r.Handle(pattern, h, http.MethodPatch)
}

// Match returns the first route whose pattern matches the full path and whose
// method set contains method. A route matching the path but not the method is
// skipped and matching continues.
func (r *Router) Match(method, path string) (*Route, handler.Params, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if !route.Allows(method) {
			continue
		}
		if params, ok := route.MatchPath(path); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Route, len(r.routes))
	for i, route := range r.routes {
		out[i] = *route
	}
	return out
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
