package dispatcher

import (
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/core/router"
)

// Outcome tells which stage of the pipeline settled a request.
type Outcome int

const (
	// OutcomeMiddleware means a middleware returned the response.
	OutcomeMiddleware Outcome = iota + 1
	// OutcomeRoute means a route handler produced the response.
	OutcomeRoute
	// OutcomeStatic means the static fallback served a file.
	OutcomeStatic
	// OutcomeNotFound means neither a route nor a static file matched.
	OutcomeNotFound
	// OutcomeFailed means the error boundary produced the response.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiddleware:
		return "middleware"
	case OutcomeRoute:
		return "route"
	case OutcomeStatic:
		return "static"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the settled response for one request.
type Result struct {
	Response *response.Response
	Outcome  Outcome
	// Route is the matched route for OutcomeRoute, nil otherwise.
	Route *router.Route
	// Err is the failure that produced an OutcomeFailed response.
	Err error
}
