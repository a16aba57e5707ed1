package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cancelkit/core/server"
)

func TestNewFromConfigMissingAddress(t *testing.T) {
	t.Parallel()

	srv, err := server.NewFromConfig(server.Config{})
	require.Nil(t, srv)
	assert.ErrorIs(t, err, server.ErrMissingAddress)
}

func TestStartStopLifecycle(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(context.Background(), http.NewServeMux())
	}()

	// Give the listener a moment to come up, then a second Start must fail.
	time.Sleep(250 * time.Millisecond)
	secondCh := make(chan error, 1)
	go func() {
		secondCh <- srv.Start(context.Background(), http.NewServeMux())
	}()
	select {
	case err := <-secondCh:
		assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	case <-time.After(time.Second):
		t.Fatal("second Start did not fail fast")
	}

	require.NoError(t, srv.Stop())

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestStartReturnsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.New("127.0.0.1:0")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx, http.NewServeMux())
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
	_ = srv.Stop()
}

func TestStopWhenNotRunning(t *testing.T) {
	t.Parallel()

	srv := server.New(":0")
	assert.NoError(t, srv.Stop())
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.New("127.0.0.1:0")

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.NewServeMux())()
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
