package health

import (
	"github.com/dmitrymomot/cancelkit/core/handler"
	"github.com/dmitrymomot/cancelkit/core/response"
)

// Liveness reports that the process is running. It performs no dependency
// checks and returns "ALIVE" unconditionally.
//
// Example:
//
//	router.Get("/health/live", health.Liveness[*router.Context]())
func Liveness[C handler.Context]() handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		return response.String("ALIVE")
	}
}
