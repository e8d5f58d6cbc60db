package handler

import (
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// Params holds named path parameters extracted by the router.
type Params map[string]string

// Get returns the named parameter or an empty string.
func (p Params) Get(name string) string {
	return p[name]
}

// HandlerFunc handles a matched route.
//
// A returned *response.Response is sent verbatim. Any other value is written
// into the default response body: []byte as raw bytes, everything else as text.
// A non-nil error is turned into an error response by the dispatcher.
type HandlerFunc func(req *request.Request, params Params) (any, error)

// Middleware intercepts a request before routing.
// Returning a nil response continues the pipeline; a non-nil response halts it
// and is sent as-is. Middleware may also mutate resp and continue.
type Middleware func(req *request.Request, resp *response.Response) (*response.Response, error)

// ErrorHandler converts a pipeline failure into the response sent to the client.
type ErrorHandler func(req *request.Request, err error) *response.Response
