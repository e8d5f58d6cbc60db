// Package middleware provides pre-routing middleware for common cross-cutting
// concerns: request IDs, client IP extraction, security headers, CORS and
// rate limiting.
//
// Every constructor returns a handler.Middleware. A middleware either edits the
// default response and returns nil to let the request continue, or returns a
// response of its own to stop the pipeline before routing. Headers set on the
// default response reach the client only when the request ends with that
// response: a handler that returns its own *response.Response replaces it.
//
// Each middleware has a plain constructor and a WithConfig variant:
//
//	d := dispatcher.New(r, dispatcher.WithMiddleware(
//		middleware.RequestID(),
//		middleware.ClientIP(),
//		middleware.SecurityHeaders(),
//		middleware.RateLimit(middleware.RateLimitConfig{
//			Limiter:    limiter,
//			SetHeaders: true,
//		}),
//	))
//
// # Request ID
//
// RequestID stores a UUID on the request with request.SetRequestID, so the
// dispatcher's completion log carries it, and echoes it in X-Request-ID.
// Set UseExisting to keep an ID supplied by a proxy.
//
// # Client IP
//
// ClientIP resolves the caller address from CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For, X-Real-IP and finally the remote address. Handlers read it
// with GetClientIP. RateLimit keys on the same address by default.
//
// # Security Headers
//
// SecurityHeaders applies the BalancedSecurity preset. StrictSecurity,
// RelaxedSecurity and DevelopmentSecurity are available through
// SecurityHeadersWithConfig, and every preset can be copied and edited:
//
//	cfg := middleware.StrictSecurity
//	cfg.CustomHeaders = map[string]string{"X-App-Version": version}
//	middleware.SecurityHeadersWithConfig(cfg)
//
// # CORS
//
// CORS answers preflight requests (OPTIONS with Access-Control-Request-Method)
// with 204 or 403 before any route is matched. Other requests from allowed
// origins get Access-Control-Allow-Origin on the default response.
//
// # Rate Limiting
//
// RateLimit takes a token from a ratelimiter.RateLimiter per request and
// returns 429 Too Many Requests once the bucket is empty. With SetHeaders the
// X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset and Retry-After
// headers are added.
package middleware
