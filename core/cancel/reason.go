package cancel

import (
	"fmt"
	"time"
)

// ReasonClientDisconnected is recorded when the request transport reports
// that the client went away before the handler finished.
const ReasonClientDisconnected = "client-disconnected"

// HandlerError builds the abort reason for a handler failure.
func HandlerError(msg string) string {
	return "handler-error:" + msg
}

// TimeoutExceeded builds the abort reason for an elapsed request timeout.
// The duration is rendered in milliseconds for diagnosability.
func TimeoutExceeded(d time.Duration) string {
	return fmt.Sprintf("timeout:%d", d.Milliseconds())
}

// OperationAborted builds the abort reason for an operation abandoned by
// application code.
func OperationAborted(msg string) string {
	return "operation-aborted:" + msg
}

// OperationTimeout builds the abort reason for an elapsed operation-level
// timeout inside Guard.
func OperationTimeout(d time.Duration) string {
	return fmt.Sprintf("operation-timeout:%d", d.Milliseconds())
}
