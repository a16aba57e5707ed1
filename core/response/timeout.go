package response

import (
	"net/http"

	"github.com/dmitrymomot/cancelkit/core/handler"
)

// timeoutBody is the wire shape clients receive when a request is terminated
// by cancellation or timeout.
type timeoutBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// RequestTimeout creates the 408 response rendered when a request settles
// through the cancellation or timeout branch. The message carries the abort
// reason verbatim so callers can distinguish disconnects from timeouts.
func RequestTimeout(reason string) handler.Response {
	if reason == "" {
		reason = http.StatusText(http.StatusRequestTimeout)
	}
	return JSONWithStatus(timeoutBody{
		StatusCode: http.StatusRequestTimeout,
		Message:    reason,
		Error:      "Request Timeout",
	}, http.StatusRequestTimeout)
}
