// Package router provides a minimal generic HTTP router used as the host
// for the toolkit's middleware: exact-path matching, type-safe handlers via
// core/handler contracts, middleware chaining, panic recovery, and an error
// handler that maps errors carrying a StatusCode() to their HTTP status.
//
//	r := router.New[*router.Context]()
//	r.Use(middleware.Cancellation[*router.Context]())
//	r.Get("/orders", listOrders)
//	http.ListenAndServe(":8080", r)
package router
