// Package cancel provides the per-request cancellation primitive underlying
// the toolkit's cancellation middleware: a fire-once Handle with observer
// registration, effective-timeout resolution across the global/route
// hierarchy, and an operation guard that races arbitrary work against the
// handle and an operation-scoped timer.
//
// # Handle
//
// A Handle is created per request and fired at most once, whichever comes
// first of client disconnect, handler failure, request timeout, or normal
// completion. Firing is idempotent and race-free; the first caller wins:
//
//	h := cancel.NewWithTimeout(5 * time.Second)
//	remove := h.OnFire(func(reason string) {
//		log.Println("request abandoned:", reason)
//	})
//	defer remove()
//
//	h.Fire(cancel.ReasonClientDisconnected) // true
//	h.Fire("too late")                      // false, reason unchanged
//
// # Bridging to context.Context
//
// Context-aware clients consume the handle through a derived context that
// is cancelled (with an *AbortError cause) when the handle fires:
//
//	ctx, stop := h.Context(r.Context())
//	defer stop()
//	rows, err := pool.Query(ctx, "SELECT ...")
//
// # Guarding individual operations
//
// Guard bounds a single operation by both the request's handle and its own
// timeout. The operation budget is validated against the request budget up
// front:
//
//	user, err := cancel.Guard(ctx, h, cancel.GuardOptions{Timeout: 2 * time.Second},
//		func(ctx context.Context) (User, error) {
//			return store.FindUser(ctx, id)
//		})
//	var abort *cancel.AbortError
//	if errors.As(err, &abort) {
//		// abandoned: abort.Reason says why
//	}
//
// Cancellation is advisory. Work that never observes the handle, the
// derived context, or Guard runs to completion even though the request has
// been marked aborted.
package cancel
