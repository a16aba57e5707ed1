package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Implementations carry the request, the response writer, and
// request-scoped values across the middleware chain.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
