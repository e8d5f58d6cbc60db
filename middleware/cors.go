package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(req *request.Request) bool

	// AllowOrigins specifies allowed origins. Empty or "*" allows all.
	AllowOrigins []string

	// AllowMethods defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders defaults to common headers including Authorization and Content-Type
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials is never sent together with a wildcard origin
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc takes precedence over AllowOrigins when set.
	// It returns the origin value to send and whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS allows every origin with the default methods and headers.
// Use CORSWithConfig with explicit origins in production.
func CORS() handler.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig answers preflight requests directly and adds CORS headers to
// the default response of every other request from an allowed origin.
//
//	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
//		AllowOrigins:     []string{"https://myapp.com"},
//		AllowCredentials: true,
//		MaxAge:           86400,
//	}))
func CORSWithConfig(cfg CORSConfig) handler.Middleware {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			DefaultRequestIDHeader,
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")
	wildcard := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	resolve := func(origin string) (string, bool) {
		switch {
		case cfg.AllowOriginFunc != nil:
			return cfg.AllowOriginFunc(origin)
		case wildcard:
			return "*", true
		case slices.Contains(cfg.AllowOrigins, origin):
			return origin, true
		}
		return "", false
	}

	return func(req *request.Request, resp *response.Response) (*response.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return nil, nil
		}

		allowedOrigin, allowed := resolve(req.Header.Get("Origin"))
		credentials := cfg.AllowCredentials && allowedOrigin != "*"

		requestMethod := req.Header.Get("Access-Control-Request-Method")
		if req.Method == http.MethodOptions && requestMethod != "" {
			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				return response.TextWithStatus("", http.StatusForbidden), nil
			}

			preflight := response.New()
			preflight.Status = http.StatusNoContent
			preflight.SetHeader("Access-Control-Allow-Origin", allowedOrigin)
			preflight.SetHeader("Access-Control-Allow-Methods", allowMethods)
			if req.Header.Get("Access-Control-Request-Headers") != "" {
				preflight.SetHeader("Access-Control-Allow-Headers", allowHeaders)
			}
			if credentials {
				preflight.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				preflight.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			preflight.SetHeader("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")
			return preflight, nil
		}

		if !allowed {
			return nil, nil
		}

		resp.SetHeader("Access-Control-Allow-Origin", allowedOrigin)
		if credentials {
			resp.SetHeader("Access-Control-Allow-Credentials", "true")
		}
		if exposeHeaders != "" {
			resp.SetHeader("Access-Control-Expose-Headers", exposeHeaders)
		}
		resp.SetHeader("Vary", "Origin")
		return nil, nil
	}
}

// AllowOriginWildcard echoes any non-empty origin. Pair it with
// AllowCredentials only for trusted clients.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		return origin, origin != ""
	}
}

// AllowOriginSubdomain allows domain and any of its subdomains, on any port.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(domain, "*."), "."))
	suffix := "." + domain

	return func(origin string) (string, bool) {
		u, err := url.Parse(origin)
		if origin == "" || err != nil || u.Host == "" {
			return "", false
		}
		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, suffix) {
			return origin, true
		}
		return "", false
	}
}
