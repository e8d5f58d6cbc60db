package middleware

import (
	"math"
	"strconv"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// Limiter is the rate limiting implementation to use
	Limiter ratelimiter.RateLimiter
	// KeyExtractor defines how to extract the rate limiting key from requests (default: client IP)
	KeyExtractor func(req *request.Request) string
	// ErrorHandler builds the response for a denied request (default: 429 Too Many Requests)
	ErrorHandler func(req *request.Request, result *ratelimiter.Result) *response.Response
	// SetHeaders adds X-RateLimit-* headers to allowed and denied responses
	SetHeaders bool
}

// RateLimit short-circuits requests over the limit with 429.
// Panics if no limiter is provided.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     100,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	app.Use(middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter, SetHeaders: true}))
//
// A limiter failure is returned as an error and ends up as a 500.
func RateLimit(cfg RateLimitConfig) handler.Middleware {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = clientAddr
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ *request.Request, _ *ratelimiter.Result) *response.Response {
			return response.Error(response.ErrTooManyRequests)
		}
	}

	return func(req *request.Request, resp *response.Response) (*response.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return nil, nil
		}

		result, err := cfg.Limiter.Allow(req.Context(), cfg.KeyExtractor(req))
		if err != nil {
			return nil, err
		}

		if !result.Allowed() {
			denied := cfg.ErrorHandler(req, result)
			if cfg.SetHeaders {
				setRateLimitHeaders(denied, result)
			}
			return denied, nil
		}

		if cfg.SetHeaders {
			setRateLimitHeaders(resp, result)
		}
		return nil, nil
	}
}

// setRateLimitHeaders writes X-RateLimit-Limit, X-RateLimit-Remaining,
// X-RateLimit-Reset and, for denied requests, Retry-After.
func setRateLimitHeaders(resp *response.Response, result *ratelimiter.Result) {
	resp.SetHeader("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	resp.SetHeader("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
	resp.SetHeader("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed() {
		// Round up so clients never retry early.
		secs := int(math.Ceil(result.RetryAfter().Seconds()))
		resp.SetHeader("Retry-After", strconv.Itoa(max(1, secs)))
	}
}
