// Package response provides handler.Response constructors for plain-text and
// JSON payloads, structured HTTP errors, and the request-timeout boundary
// response produced by the cancellation middleware.
package response
