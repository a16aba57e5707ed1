// Package handler defines the request-processing contracts shared by the
// toolkit: type-safe handlers with custom context types, composable
// middleware, and a Response function that separates response construction
// from rendering.
//
// The Context interface extends context.Context with HTTP-specific access:
//
//	type Context interface {
//		context.Context
//		Request() *http.Request
//		ResponseWriter() http.ResponseWriter
//		Param(key string) string
//		SetValue(key, val any)
//	}
//
// Handlers return a Response instead of writing directly, which lets
// middleware observe and replace the outcome before anything reaches the
// wire:
//
//	func hello(ctx handler.Context) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := w.Write([]byte("hello"))
//			return err
//		}
//	}
//
// Middleware wraps HandlerFunc values and composes in declaration order:
//
//	func Trace[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				// before
//				resp := next(ctx)
//				// after
//				return resp
//			}
//		}
//	}
package handler
