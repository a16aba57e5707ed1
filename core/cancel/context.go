package cancel

import "context"

// handleContextKey is an unexported key type to avoid context key collisions.
type handleContextKey struct{}

// WithHandle returns a new context carrying the provided handle. If ctx is
// nil, context.Background() is used. If h is nil, the original context is
// returned unchanged.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if h == nil {
		return ctx
	}
	return context.WithValue(ctx, handleContextKey{}, h)
}

// Attach stores the handle on a carrier with SetValue semantics (such as a
// framework request context), under the same key FromContext reads.
func Attach(carrier interface{ SetValue(key, val any) }, h *Handle) {
	if carrier == nil || h == nil {
		return
	}
	carrier.SetValue(handleContextKey{}, h)
}

// FromContext extracts a handle previously stored with WithHandle or Attach.
// The second return value indicates whether a handle was present.
func FromContext(ctx context.Context) (*Handle, bool) {
	if ctx == nil {
		return nil, false
	}
	h, ok := ctx.Value(handleContextKey{}).(*Handle)
	return h, ok
}

// Context derives a context cancelled when the handle fires, so the handle
// can be handed to any context-aware client (database drivers, HTTP
// clients). The cancellation cause is an *AbortError carrying the abort
// reason. The returned stop function releases the fire observer and cancels
// the derived context; callers must invoke it when done with the context.
func (h *Handle) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancelCause(parent)
	remove := h.OnFire(func(reason string) {
		cancel(&AbortError{Reason: reason})
	})
	return ctx, func() {
		remove()
		cancel(nil)
	}
}
