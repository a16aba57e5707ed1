// Package middleware provides the request cancellation middleware: it
// attaches a cancel.Handle to every inbound request, arms it against client
// disconnect, handler failure, and the resolved request timeout, and races
// the handler against those signals so long-running work can be abandoned
// cooperatively.
//
// # Basic usage
//
//	r := router.New[*router.Context]()
//	r.Use(middleware.CancellationWithTimeout[*router.Context](30 * time.Second))
//
// # Timeout hierarchy
//
// The effective timeout of a request is resolved from two tiers: a per-route
// override always wins when present (including an explicit zero, which
// disables the timeout for that route), otherwise the global timeout
// applies. A third, operation-level tier nests inside the request via
// cancel.Guard and is validated against the request budget.
//
//	routes := middleware.NewRouteTimeouts()
//	routes.Set(http.MethodGet, "/reports", 5*time.Second)
//	routes.Disable(http.MethodGet, "/stream")
//
//	r.Use(middleware.CancellationWithConfig[*router.Context](middleware.CancellationConfig{
//		Timeout:      30 * time.Second,
//		RouteTimeout: routes.Lookup,
//		SkipRoutes:   []string{"^/health"},
//		SkipMethods:  []string{http.MethodOptions},
//	}))
//
// # Downstream cancellation
//
// Handlers retrieve the handle and propagate it into anything
// context-aware:
//
//	func listOrders(ctx *router.Context) handler.Response {
//		h, _ := middleware.GetHandle(ctx)
//		orders, err := cancel.Guard(ctx, h, cancel.GuardOptions{Timeout: 2 * time.Second},
//			func(ctx context.Context) ([]Order, error) {
//				return store.ListOrders(ctx)
//			})
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(orders)
//	}
//
// When the request settles through the cancellation or timeout branch the
// client receives HTTP 408 with a JSON body carrying the abort reason, e.g.
// {"statusCode":408,"message":"timeout:5000","error":"Request Timeout"}.
// Client disconnects share the 408 mapping; the reasons stay
// distinguishable in the body and in logs.
package middleware
