package handler

import (
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// Chain is an ordered list of middleware run before routing.
type Chain []Middleware

// Use appends middleware to the chain in the order given.
func (c *Chain) Use(mw ...Middleware) {
	for _, m := range mw {
		if m != nil {
			*c = append(*c, m)
		}
	}
}

// Run executes the middleware in registration order.
// It stops at the first middleware that returns a response or an error and
// reports it; a nil response with a nil error means every entry continued.
func (c Chain) Run(req *request.Request, resp *response.Response) (*response.Response, error) {
	for _, m := range c {
		out, err := m(req, resp)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return out, nil
		}
	}
	return nil, nil
}

// Len returns the number of registered middleware.
func (c Chain) Len() int {
	return len(c)
}
