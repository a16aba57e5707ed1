package cancel

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle is a per-request cancellation primitive. It starts live and can be
// fired exactly once; firing records a reason, closes the Done channel, and
// notifies registered observers in registration order. A fired handle never
// becomes live again.
//
// A handle is owned by exactly one request. It may be read and observed by
// any number of downstream consumers, and fired concurrently: the first
// caller wins, all later calls are no-ops.
type Handle struct {
	mu        sync.Mutex
	id        string
	aborted   bool
	reason    string
	timeout   time.Duration
	nextObsID int
	observers []observer
	done      chan struct{}
}

type observer struct {
	id int
	fn func(reason string)
}

// New creates a live handle with no effective timeout.
func New() *Handle {
	return &Handle{
		id:   uuid.New().String(),
		done: make(chan struct{}),
	}
}

// NewWithTimeout creates a live handle carrying an effective request timeout.
// A non-positive duration means no timeout.
func NewWithTimeout(d time.Duration) *Handle {
	h := New()
	if d > 0 {
		h.timeout = d
	}
	return h
}

// ID returns the handle's identifier, used for log correlation.
func (h *Handle) ID() string {
	return h.id
}

// Fire transitions the handle to aborted with the given reason. Only the
// first call has any effect; it returns true for the winning caller and
// false for every later one. Observers registered at fire time are invoked
// exactly once, in registration order, after the Done channel is closed.
func (h *Handle) Fire(reason string) bool {
	h.mu.Lock()
	if h.aborted {
		h.mu.Unlock()
		return false
	}
	if reason == "" {
		reason = "aborted"
	}
	h.aborted = true
	h.reason = reason
	close(h.done)
	obs := h.observers
	h.observers = nil
	h.mu.Unlock()

	// Callbacks run outside the lock so they may read the handle freely.
	for _, o := range obs {
		o.fn(reason)
	}
	return true
}

// OnFire registers an observer invoked exactly once when the handle fires.
// If the handle is already aborted, fn is invoked synchronously before
// OnFire returns. The returned function unregisters the observer and is safe
// to call more than once or after the handle has fired.
func (h *Handle) OnFire(fn func(reason string)) func() {
	h.mu.Lock()
	if h.aborted {
		reason := h.reason
		h.mu.Unlock()
		fn(reason)
		return func() {}
	}

	id := h.nextObsID
	h.nextObsID++
	h.observers = append(h.observers, observer{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, o := range h.observers {
			if o.id == id {
				h.observers = append(h.observers[:i], h.observers[i+1:]...)
				return
			}
		}
	}
}

// Aborted reports whether the handle has fired. This is a point-in-time
// read; prefer Done for blocking on the transition.
func (h *Handle) Aborted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aborted
}

// Reason returns the abort reason, or an empty string while the handle is
// still live. Once set, the reason never changes.
func (h *Handle) Reason() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reason
}

// Done returns a channel closed when the handle fires.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// EffectiveTimeout returns the resolved request timeout governing this
// handle, or 0 when the request has none. Operation-level timeouts validate
// themselves against this budget.
func (h *Handle) EffectiveTimeout() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timeout
}

// SetEffectiveTimeout records the resolved request timeout on the handle.
// Non-positive values clear it.
func (h *Handle) SetEffectiveTimeout(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d < 0 {
		d = 0
	}
	h.timeout = d
}
