package middleware

import (
	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/pkg/clientip"
)

type clientIPKey struct{}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// HeaderName specifies the response header name for the client IP (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader echoes the IP in the default response headers
	StoreInHeader bool
	// ValidateFunc rejects a request with 403 when it returns an error
	ValidateFunc func(req *request.Request, ip string) error
}

// ClientIP stores the client address on the request.
func ClientIP() handler.Middleware {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig extracts the client address from proxy headers or the
// remote address and stores it on the request for GetClientIP.
func ClientIPWithConfig(cfg ClientIPConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return func(req *request.Request, resp *response.Response) (*response.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return nil, nil
		}

		ip := clientip.FromHeader(req.Header, req.RemoteAddr)
		req.SetValue(clientIPKey{}, ip)

		if cfg.ValidateFunc != nil {
			if err := cfg.ValidateFunc(req, ip); err != nil {
				return response.Error(response.ErrForbidden.WithError(err)), nil
			}
		}

		if cfg.StoreInHeader {
			resp.SetHeader(cfg.HeaderName, ip)
		}
		return nil, nil
	}
}

// GetClientIP returns the address stored by ClientIP.
func GetClientIP(req *request.Request) (string, bool) {
	if ip, ok := req.Value(clientIPKey{}).(string); ok {
		return ip, true
	}
	return "", false
}

// clientAddr prefers the stored address and falls back to extraction.
func clientAddr(req *request.Request) string {
	if ip, ok := GetClientIP(req); ok {
		return ip
	}
	return clientip.FromHeader(req.Header, req.RemoteAddr)
}
