package cancel_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/core/cancel"
)

func TestHandleFireIsIdempotent(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	require.False(t, h.Aborted())
	require.Empty(t, h.Reason())

	assert.True(t, h.Fire("first"))
	assert.False(t, h.Fire("second"))
	assert.False(t, h.Fire("third"))

	assert.True(t, h.Aborted())
	assert.Equal(t, "first", h.Reason())
}

func TestHandleConcurrentFireSingleWinner(t *testing.T) {
	t.Parallel()

	h := cancel.New()

	var wg sync.WaitGroup
	var winners int64
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if h.Fire(fmt.Sprintf("reason-%d", n)) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, winners)
	assert.True(t, h.Aborted())
	assert.Contains(t, h.Reason(), "reason-")
}

func TestHandleObserversInvokedOnceInOrder(t *testing.T) {
	t.Parallel()

	h := cancel.New()

	var order []int
	h.OnFire(func(string) { order = append(order, 1) })
	h.OnFire(func(string) { order = append(order, 2) })
	h.OnFire(func(string) { order = append(order, 3) })

	h.Fire("done")
	h.Fire("again")

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHandleObserverReceivesReason(t *testing.T) {
	t.Parallel()

	h := cancel.New()

	var got string
	h.OnFire(func(reason string) { got = reason })
	h.Fire(cancel.ReasonClientDisconnected)

	assert.Equal(t, cancel.ReasonClientDisconnected, got)
}

func TestHandleOnFireAfterAbortInvokesImmediately(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	h.Fire("already gone")

	var got string
	remove := h.OnFire(func(reason string) { got = reason })
	assert.Equal(t, "already gone", got)

	// Removing after the fact is a safe no-op.
	remove()
	remove()
}

func TestHandleObserverRemoval(t *testing.T) {
	t.Parallel()

	h := cancel.New()

	var calls int
	remove := h.OnFire(func(string) { calls++ })
	h.OnFire(func(string) { calls += 10 })

	remove()
	h.Fire("bye")

	assert.Equal(t, 10, calls, "removed observer must not run")
}

func TestHandleDoneChannel(t *testing.T) {
	t.Parallel()

	h := cancel.New()

	select {
	case <-h.Done():
		t.Fatal("done channel closed before fire")
	default:
	}

	h.Fire("done")

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel not closed after fire")
	}
}

func TestHandleEffectiveTimeout(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	assert.Zero(t, h.EffectiveTimeout())

	h.SetEffectiveTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, h.EffectiveTimeout())

	h.SetEffectiveTimeout(-1)
	assert.Zero(t, h.EffectiveTimeout())

	ht := cancel.NewWithTimeout(time.Second)
	assert.Equal(t, time.Second, ht.EffectiveTimeout())
}

func TestHandleEmptyReasonDefaults(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	h.Fire("")

	assert.True(t, h.Aborted())
	assert.NotEmpty(t, h.Reason())
}

func TestHandleIDsAreUnique(t *testing.T) {
	t.Parallel()

	a, b := cancel.New(), cancel.New()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
