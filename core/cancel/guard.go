package cancel

import (
	"context"
	"time"
)

// GuardOptions configures a single Guard call.
type GuardOptions struct {
	// Timeout bounds the wrapped operation. Must not exceed the handle's
	// effective request timeout when both are set. Zero means no
	// operation-level timeout.
	Timeout time.Duration

	// TimeoutMessage overrides the default "operation-timeout:<ms>" reason
	// reported when Timeout elapses.
	TimeoutMessage string
}

// guardResult carries one settlement of the wrapped operation.
type guardResult[T any] struct {
	val T
	err error
}

// Guard makes an arbitrary operation cancellation-aware without requiring
// the operation itself to understand handles. The operation receives a
// context cancelled when the handle fires or the operation timeout elapses,
// and Guard returns as soon as the first of {operation settles, handle
// fires, timer elapses} occurs. Losing branches are torn down: the timer is
// stopped, the fire observer removed, and the derived context cancelled; a
// still-running operation keeps the buffered result channel so its goroutine
// never leaks.
//
// With a nil handle and no timeout the operation is invoked directly with
// zero overhead. If the handle is already aborted the operation is never
// started and an *AbortError with the handle's reason is returned. If the
// operation timeout exceeds the handle's effective request timeout, Guard
// returns a *BudgetError synchronously: an operation must not be allowed a
// longer budget than its enclosing request.
func Guard[T any](ctx context.Context, h *Handle, opts GuardOptions, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if opts.Timeout > 0 && h != nil {
		if budget := h.EffectiveTimeout(); budget > 0 && opts.Timeout > budget {
			return zero, &BudgetError{Operation: opts.Timeout, Request: budget}
		}
	}

	if h != nil && h.Aborted() {
		return zero, &AbortError{Reason: h.Reason()}
	}

	// Zero-overhead passthrough when there is nothing to race against.
	if h == nil && opts.Timeout <= 0 {
		return op(ctx)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	opCtx := ctx
	stop := context.CancelFunc(func() {})
	var fired <-chan struct{}
	if h != nil {
		opCtx, stop = h.Context(ctx)
		fired = h.Done()
	}
	defer stop()

	// The timer is the single timeout authority; the operation context is
	// cancelled only after the timer branch wins, so a blocked operation
	// cannot settle with its own deadline error at the timeout instant.
	opCancel := context.CancelFunc(func() {})
	var timerC <-chan time.Time
	if opts.Timeout > 0 {
		opCtx, opCancel = context.WithCancel(opCtx)

		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timerC = timer.C
	}
	defer opCancel()

	resCh := make(chan guardResult[T], 1)
	go func() {
		val, err := op(opCtx)
		resCh <- guardResult[T]{val: val, err: err}
	}()

	select {
	case res := <-resCh:
		return res.val, res.err
	case <-fired:
		return zero, &AbortError{Reason: h.Reason()}
	case <-timerC:
		opCancel()
		reason := opts.TimeoutMessage
		if reason == "" {
			reason = OperationTimeout(opts.Timeout)
		}
		return zero, &AbortError{Reason: reason}
	}
}

// GuardErr wraps an operation that returns only an error.
func GuardErr(ctx context.Context, h *Handle, opts GuardOptions, op func(context.Context) error) error {
	_, err := Guard(ctx, h, opts, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
