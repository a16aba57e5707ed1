package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/cancelkit/core/cancel"
	"github.com/dmitrymomot/cancelkit/core/handler"
	"github.com/dmitrymomot/cancelkit/core/logger"
	"github.com/dmitrymomot/cancelkit/core/response"
)

// DefaultAbortReason is recorded on cleanup when no more specific reason won.
const DefaultAbortReason = "Request terminated"

// CancellationConfig configures the request cancellation middleware.
type CancellationConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Timeout is the global default request timeout (default: none)
	Timeout time.Duration

	// RouteTimeout looks up a per-route timeout override. Returning
	// (d, true) overrides the global timeout, including d == 0 which
	// disables the timeout for that route entirely; returning (_, false)
	// falls back to Timeout.
	RouteTimeout func(ctx handler.Context) (time.Duration, bool)

	// Reason is the abort reason recorded when a request finishes without
	// a more specific one (default: "Request terminated")
	Reason string

	// Logger receives a record for every cleanup and timeout event.
	// A nil logger disables logging entirely.
	Logger *slog.Logger

	// SkipRoutes holds regular expressions matched against the request
	// path; a match exempts the request from all instrumentation.
	SkipRoutes []string

	// SkipMethods holds HTTP method names (case-insensitive) exempt from
	// all instrumentation.
	SkipMethods []string
}

// Cancellation creates a request cancellation middleware with default
// configuration: no request timeout, but client disconnects and handler
// failures still fire the per-request handle.
func Cancellation[C handler.Context]() handler.Middleware[C] {
	return CancellationWithConfig[C](CancellationConfig{})
}

// CancellationWithTimeout creates a cancellation middleware with a global
// request timeout.
func CancellationWithTimeout[C handler.Context](timeout time.Duration) handler.Middleware[C] {
	return CancellationWithConfig[C](CancellationConfig{Timeout: timeout})
}

// CancellationWithConfig creates a request cancellation middleware with
// custom configuration. It attaches a cancel.Handle to every non-exempt
// request, arms it against client disconnect, handler failure, and the
// resolved request timeout, and settles with whichever outcome comes first.
// Panics if a SkipRoutes pattern is not a valid regular expression; route
// exemptions are boot-time configuration and must fail loud.
func CancellationWithConfig[C handler.Context](cfg CancellationConfig) handler.Middleware[C] {
	mw, err := newCancellation[C](cfg)
	if err != nil {
		panic(err)
	}
	return mw
}

// newCancellation builds the middleware, reporting invalid configuration
// instead of panicking. Used by CancellationFromEnv where configuration
// comes from the environment.
func newCancellation[C handler.Context](cfg CancellationConfig) (handler.Middleware[C], error) {
	if cfg.Reason == "" {
		cfg.Reason = DefaultAbortReason
	}

	skipRoutes := make([]*regexp.Regexp, 0, len(cfg.SkipRoutes))
	for _, pattern := range cfg.SkipRoutes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("middleware: invalid skip route pattern %q: %w", pattern, err)
		}
		skipRoutes = append(skipRoutes, re)
	}

	skipMethods := make(map[string]struct{}, len(cfg.SkipMethods))
	for _, m := range cfg.SkipMethods {
		skipMethods[strings.ToUpper(m)] = struct{}{}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if shouldSkip(req.URL.Path, req.Method, skipRoutes, skipMethods) {
				// Exempt requests carry no handle and pay no
				// instrumentation cost at all.
				return next(ctx)
			}

			h, cleanup := bind(ctx, &cfg)
			return race(ctx, next, h, cleanup, &cfg)
		}
	}, nil
}

// GetHandle retrieves the cancellation handle attached to the request, if
// the request was instrumented. Downstream code uses it with cancel.Guard
// or derives a context via Handle.Context for external clients.
func GetHandle(ctx handler.Context) (*cancel.Handle, bool) {
	return cancel.FromContext(ctx)
}

// shouldSkip reports whether the request is exempt from instrumentation:
// any path pattern match or any case-insensitive method match qualifies.
func shouldSkip(path, method string, routes []*regexp.Regexp, methods map[string]struct{}) bool {
	if _, ok := methods[strings.ToUpper(method)]; ok {
		return true
	}
	for _, re := range routes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// bind creates the request's handle, resolves the effective timeout, and
// wires the transport watcher. The returned cleanup is idempotent: it fires
// the handle (keeping an earlier reason if one already won), releases the
// watcher, and logs the terminal event. It must run on every exit path.
func bind[C handler.Context](ctx C, cfg *CancellationConfig) (*cancel.Handle, func(reason string)) {
	var route *time.Duration
	if cfg.RouteTimeout != nil {
		if d, ok := cfg.RouteTimeout(ctx); ok {
			route = &d
		}
	}
	effective := cancel.Resolve(route, cfg.Timeout)

	h := cancel.NewWithTimeout(effective)
	cancel.Attach(ctx, h)

	req := ctx.Request()

	// The request context is the transport's disconnect/error signal: the
	// HTTP server cancels it when the client goes away or the connection
	// breaks. The watcher is unsubscribed by cleanup.
	unsubscribe := make(chan struct{})
	go func() {
		select {
		case <-req.Context().Done():
			h.Fire(cancel.ReasonClientDisconnected)
		case <-unsubscribe:
		}
	}()

	var once sync.Once
	cleanup := func(reason string) {
		once.Do(func() {
			if reason == "" {
				reason = cfg.Reason
			}
			h.Fire(reason)
			close(unsubscribe)

			logEvent(cfg.Logger, req.Context(), "request cleanup",
				logger.Component("cancellation"),
				logger.Event("cleanup"),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.HandleID(h.ID()),
				logger.Reason(h.Reason()),
				logger.Timeout(effective),
			)
		})
	}

	return h, cleanup
}

// raceOutcome carries the handler branch's settlement.
type raceOutcome struct {
	resp     handler.Response
	panicVal any
	panicked bool
}

// race runs the handler concurrently with the cancellation and timeout
// branches and returns the first settlement. Losing branches are torn down:
// the timer is stopped on every path and the handler goroutine, if it lost,
// finishes into a buffered channel. Cleanup runs exactly once before the
// winning outcome is delivered.
func race[C handler.Context](ctx C, next handler.HandlerFunc[C], h *cancel.Handle, cleanup func(string), cfg *CancellationConfig) handler.Response {
	resCh := make(chan raceOutcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				resCh <- raceOutcome{panicked: true, panicVal: p}
			}
		}()
		resCh <- raceOutcome{resp: next(ctx)}
	}()

	// The timeout branch exists only for a positive effective timeout;
	// otherwise it stays pending forever.
	var timerC <-chan time.Time
	effective := h.EffectiveTimeout()
	if effective > 0 {
		timer := time.NewTimer(effective)
		defer timer.Stop()
		timerC = timer.C
	}

	select {
	case out := <-resCh:
		if out.panicked {
			cleanup(cancel.HandlerError(fmt.Sprint(out.panicVal)))
			// Re-panic on the serving goroutine so the host router's
			// recovery applies as if the handler panicked inline.
			panic(out.panicVal)
		}
		if out.resp == nil {
			cleanup("")
			return nil
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			// Cleanup must run even when rendering panics; the panic
			// continues into the host router's recovery afterwards.
			defer func() {
				if p := recover(); p != nil {
					cleanup(cancel.HandlerError(fmt.Sprint(p)))
					panic(p)
				}
			}()
			if err := out.resp(w, r); err != nil {
				cleanup(cancel.HandlerError(err.Error()))
				return err
			}
			cleanup("")
			return nil
		}

	case <-h.Done():
		// Fired by disconnect, application code, or a nested guard.
		cleanup("")
		return timeoutResponse(ctx, h, cfg)

	case <-timerC:
		h.Fire(cancel.TimeoutExceeded(effective))
		cleanup("")
		return timeoutResponse(ctx, h, cfg)
	}
}

// timeoutResponse renders the 408 boundary response for a request settled
// through the cancellation or timeout branch.
func timeoutResponse[C handler.Context](ctx C, h *cancel.Handle, cfg *CancellationConfig) handler.Response {
	req := ctx.Request()
	terr := &cancel.TimeoutError{Reason: h.Reason(), Timeout: h.EffectiveTimeout()}
	logEvent(cfg.Logger, req.Context(), "request terminated",
		logger.Component("cancellation"),
		logger.Event("terminated"),
		logger.Method(req.Method),
		logger.Path(req.URL.Path),
		logger.HandleID(h.ID()),
		logger.Reason(h.Reason()),
		logger.Error(terr),
	)
	return response.RequestTimeout(h.Reason())
}

// logEvent logs best-effort: a panicking custom slog handler must never
// crash the request.
func logEvent(log *slog.Logger, ctx context.Context, msg string, attrs ...slog.Attr) {
	if log == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	log.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
