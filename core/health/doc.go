// Package health provides liveness and readiness probe handlers. Readiness
// checks run through the operation guard so they respect both a per-check
// timeout and the request's cancellation handle. Probe endpoints are the
// canonical candidates for the cancellation middleware's SkipRoutes
// exemption.
package health
