package health

import (
	"net/http"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// Liveness reports that the process is serving. No dependency checks.
//
//	r.Get("/health/live", health.Liveness)
func Liveness(*request.Request, handler.Params) (any, error) {
	return "ALIVE", nil
}

// NoContent answers 204 without a body.
//
//	r.Get("/ping", health.NoContent)
func NoContent(*request.Request, handler.Params) (any, error) {
	resp := response.New()
	resp.Status = http.StatusNoContent
	return resp, nil
}
