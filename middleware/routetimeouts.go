package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/cancelkit/core/handler"
)

// RouteTimeouts is a concrete route-metadata source for per-route timeout
// overrides, keyed by HTTP method and exact path. Presence of an entry is
// distinguishable from absence: a registered zero (via Disable) explicitly
// turns the timeout off for that route, while an unregistered route falls
// back to the global timeout.
type RouteTimeouts struct {
	mu        sync.RWMutex
	overrides map[string]time.Duration
}

// NewRouteTimeouts creates an empty override registry.
func NewRouteTimeouts() *RouteTimeouts {
	return &RouteTimeouts{overrides: make(map[string]time.Duration)}
}

// Set registers a timeout override for the given method and path.
func (rt *RouteTimeouts) Set(method, path string, d time.Duration) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.overrides[routeKey(method, path)] = d
}

// Disable registers an explicit "no timeout" override for the given method
// and path, suppressing the global timeout.
func (rt *RouteTimeouts) Disable(method, path string) {
	rt.Set(method, path, 0)
}

// Lookup implements the CancellationConfig.RouteTimeout hook.
func (rt *RouteTimeouts) Lookup(ctx handler.Context) (time.Duration, bool) {
	req := ctx.Request()
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	d, ok := rt.overrides[routeKey(req.Method, req.URL.Path)]
	return d, ok
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
