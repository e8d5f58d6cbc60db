package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// Check verifies one dependency.
type Check func(ctx context.Context) error

// Readiness runs every check in order and answers "READY", or 503 on the first
// failure. Failures are logged, not sent to the client.
//
//	r.Get("/health/ready", health.Readiness(log,
//		pg.Healthcheck(db),
//		redis.Healthcheck(rdb),
//	))
func Readiness(log *slog.Logger, checks ...Check) handler.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(req *request.Request, _ handler.Params) (any, error) {
		ctx := req.Context()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Error(err))
				return response.Error(response.ErrServiceUnavailable), nil
			}
		}
		return "READY", nil
	}
}
