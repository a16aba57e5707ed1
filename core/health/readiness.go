package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/cancelkit/core/cancel"
	"github.com/dmitrymomot/cancelkit/core/handler"
	"github.com/dmitrymomot/cancelkit/core/logger"
	"github.com/dmitrymomot/cancelkit/core/response"
)

// Readiness verifies all service dependencies are functioning. Each check
// runs through cancel.Guard with the given per-check timeout and the
// request's cancellation handle when one is attached, so a slow dependency
// cannot outlive the request budget. Returns "READY" if all checks pass,
// 503 Service Unavailable if any fail.
//
// Example:
//
//	readiness := health.Readiness[*router.Context](log, 2*time.Second,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	)
//	router.Get("/health/ready", readiness)
func Readiness[C handler.Context](log *slog.Logger, checkTimeout time.Duration, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		h, _ := cancel.FromContext(ctx)
		opts := cancel.GuardOptions{Timeout: checkTimeout}

		for _, check := range checks {
			if err := cancel.GuardErr(ctx, h, opts, check); err != nil {
				if log != nil {
					log.ErrorContext(ctx, "readiness check failed",
						logger.Component("health"),
						logger.Error(err),
					)
				}
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}

		return response.String("READY")
	}
}
