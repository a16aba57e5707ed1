package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/cancelkit/core/health"
	"github.com/dmitrymomot/cancelkit/core/router"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/live", health.Liveness[*router.Context]())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestReadinessAllChecksPass(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/ready", health.Readiness[*router.Context](nil, time.Second,
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return nil },
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}

func TestReadinessFailingCheck(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/ready", health.Readiness[*router.Context](nil, time.Second,
		func(ctx context.Context) error { return errors.New("db down") },
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReadinessSlowCheckTimesOut(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/ready", health.Readiness[*router.Context](nil, 20*time.Millisecond,
		func(ctx context.Context) error {
			time.Sleep(time.Second)
			return nil
		},
	))

	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "slow check must be bounded by the guard timeout")
}
