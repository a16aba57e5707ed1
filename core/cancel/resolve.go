package cancel

import "time"

// Resolve computes the single effective timeout governing a request from a
// route-level override and a global default. A nil route means no override
// and falls back to the global value; a non-nil route always wins, including
// an explicit zero, which disables the timeout entirely. The returned zero
// value means "no timeout".
func Resolve(route *time.Duration, global time.Duration) time.Duration {
	if route != nil {
		if *route <= 0 {
			return 0
		}
		return *route
	}
	if global <= 0 {
		return 0
	}
	return global
}
