package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// DefaultRequestIDHeader carries the request ID in both directions.
const DefaultRequestIDHeader = "X-Request-ID"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting keeps an ID supplied by the client or an upstream proxy
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
func RequestID() handler.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig assigns an identifier to each request. The ID is stored
// on the request, where the dispatcher's completion log picks it up, and set
// as a header on the default response.
func RequestIDWithConfig(cfg RequestIDConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultRequestIDHeader
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(req *request.Request, resp *response.Response) (*response.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return nil, nil
		}

		var id string
		if cfg.UseExisting {
			id = req.Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		req.SetRequestID(id)
		resp.SetHeader(cfg.HeaderName, id)
		return nil, nil
	}
}

// GetRequestID returns the request ID assigned by the middleware.
func GetRequestID(req *request.Request) (string, bool) {
	id := req.RequestID()
	return id, id != ""
}
