package middleware

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cancelkit/core/config"
	"github.com/dmitrymomot/cancelkit/core/handler"
)

// CancellationEnv maps the cancellation middleware's deploy-time knobs to
// environment variables.
type CancellationEnv struct {
	Timeout     time.Duration `env:"CANCEL_TIMEOUT"`
	Reason      string        `env:"CANCEL_REASON" envDefault:"Request terminated"`
	SkipRoutes  []string      `env:"CANCEL_SKIP_ROUTES" envSeparator:","`
	SkipMethods []string      `env:"CANCEL_SKIP_METHODS" envSeparator:","`
}

// CancellationFromEnv builds the cancellation middleware from environment
// configuration. Unlike CancellationWithConfig it returns an error instead
// of panicking, since skip patterns arrive from the environment rather than
// source code. The logger may be nil to disable logging.
func CancellationFromEnv[C handler.Context](log *slog.Logger) (handler.Middleware[C], error) {
	var envCfg CancellationEnv
	if err := config.Load(&envCfg); err != nil {
		return nil, err
	}

	return newCancellation[C](CancellationConfig{
		Timeout:     envCfg.Timeout,
		Reason:      envCfg.Reason,
		Logger:      log,
		SkipRoutes:  envCfg.SkipRoutes,
		SkipMethods: envCfg.SkipMethods,
	})
}
