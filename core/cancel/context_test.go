package cancel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/core/cancel"
)

func TestWithHandleRoundTrip(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	ctx := cancel.WithHandle(context.Background(), h)

	got, ok := cancel.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, h, got)
}

func TestFromContextAbsent(t *testing.T) {
	t.Parallel()

	got, ok := cancel.FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = cancel.FromContext(nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestWithHandleNilHandle(t *testing.T) {
	t.Parallel()

	parent := context.Background()
	assert.Equal(t, parent, cancel.WithHandle(parent, nil))
}

func TestHandleContextCancelledOnFire(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	ctx, stop := h.Context(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before fire")
	default:
	}

	h.Fire("abandon ship")

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after fire")
	}

	var abort *cancel.AbortError
	require.ErrorAs(t, context.Cause(ctx), &abort)
	assert.Equal(t, "abandon ship", abort.Reason)
}

func TestHandleContextStopReleasesObserver(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	ctx, stop := h.Context(context.Background())
	stop()

	// The derived context is cancelled by stop itself, not by the handle.
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	// Firing afterwards must not replace the cause: the observer is gone.
	h.Fire("later")
	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestHandleContextAlreadyAborted(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	h.Fire("gone")

	ctx, stop := h.Context(context.Background())
	defer stop()

	require.ErrorIs(t, ctx.Err(), context.Canceled)
	var abort *cancel.AbortError
	require.ErrorAs(t, context.Cause(ctx), &abort)
	assert.Equal(t, "gone", abort.Reason)
}

func TestHandleContextRespectsParent(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := h.Context(parent)
	defer stop()

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context ignored parent cancellation")
	}
}

type valueCarrier struct {
	context.Context
	values map[any]any
}

func (c *valueCarrier) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

func (c *valueCarrier) Value(key any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return c.Context.Value(key)
}

func TestAttachStoresUnderSharedKey(t *testing.T) {
	t.Parallel()

	h := cancel.New()
	carrier := &valueCarrier{Context: context.Background()}
	cancel.Attach(carrier, h)

	got, ok := cancel.FromContext(carrier)
	require.True(t, ok)
	assert.Same(t, h, got)

	// Nil arguments are safe no-ops.
	cancel.Attach(nil, h)
	cancel.Attach(carrier, nil)
}
