package cancel

import (
	"fmt"
	"net/http"
	"time"
)

// AbortError is the operation-level failure returned by Guard when its
// handle fires or its own timer elapses. Reason carries the triggering
// abort reason verbatim.
type AbortError struct {
	Reason string
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return "operation aborted: " + e.Reason
}

// TimeoutError is the request-level failure recorded when the outcome race
// settles through its cancellation or timeout branch: the middleware logs it
// alongside the 408 boundary response. Handlers may also return it directly,
// in which case the router maps it to HTTP 408 via StatusCode.
type TimeoutError struct {
	Reason  string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return "request terminated: " + e.Reason
}

// StatusCode lets the router's error handler map the error to HTTP 408.
func (e *TimeoutError) StatusCode() int {
	return http.StatusRequestTimeout
}

// BudgetError reports an operation-level timeout configured above the
// enclosing request timeout. It is a programmer mistake surfaced
// synchronously by Guard before the operation starts, never as a runtime
// abort.
type BudgetError struct {
	Operation time.Duration
	Request   time.Duration
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	return fmt.Sprintf("operation timeout %s exceeds request timeout %s", e.Operation, e.Request)
}
