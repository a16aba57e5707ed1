package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/dmitrymomot/cancelkit/core/handler"
)

// Router is a deliberately small HTTP router: exact-path matching with
// per-router middleware, a pluggable error handler, and panic recovery.
// It exists as a host for middleware; pattern trees, parameter routing, and
// mounting belong to a full framework, not this toolkit.
type Router[C handler.Context] struct {
	mu           sync.RWMutex
	routes       map[string]handler.HandlerFunc[C] // "METHOD /path"
	paths        map[string][]string               // path -> methods, for 405 handling
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) *Router[C] {
	r := &Router[C]{
		routes:       make(map[string]handler.HandlerFunc[C]),
		paths:        make(map[string][]string),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.newContext == nil {
		r.newContext = func(w http.ResponseWriter, req *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, req, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return r
}

// Use appends middleware applied to every route on this router.
func (r *Router[C]) Use(middlewares ...handler.Middleware[C]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, middlewares...)
}

// Method registers a handler for the given HTTP method and exact path.
func (r *Router[C]) Method(method, path string, h handler.HandlerFunc[C]) {
	method = strings.ToUpper(method)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[method+" "+path] = h
	r.paths[path] = append(r.paths[path], method)
}

// Get registers a GET handler for the exact path.
func (r *Router[C]) Get(path string, h handler.HandlerFunc[C]) {
	r.Method(http.MethodGet, path, h)
}

// Post registers a POST handler for the exact path.
func (r *Router[C]) Post(path string, h handler.HandlerFunc[C]) {
	r.Method(http.MethodPost, path, h)
}

// Put registers a PUT handler for the exact path.
func (r *Router[C]) Put(path string, h handler.HandlerFunc[C]) {
	r.Method(http.MethodPut, path, h)
}

// Delete registers a DELETE handler for the exact path.
func (r *Router[C]) Delete(path string, h handler.HandlerFunc[C]) {
	r.Method(http.MethodDelete, path, h)
}

// ServeHTTP implements http.Handler.
func (r *Router[C]) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ww := newResponseWriter(w)

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	r.mu.RLock()
	fn := r.routes[strings.ToUpper(req.Method)+" "+path]
	methods := r.paths[path]
	middlewares := r.middlewares
	r.mu.RUnlock()

	ctx := r.newContext(ww, req, nil)

	// Recover from panics to prevent server crashes.
	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				r.logger.Error("panic after response written",
					"value", perr.value,
					"path", req.URL.Path,
					"method", req.Method,
				)
				return
			}
			r.errorHandler(ctx, perr)
		}
	}()

	if fn == nil {
		if len(methods) > 0 {
			ww.Header().Set("Allow", strings.Join(methods, ", "))
			r.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			r.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	if len(middlewares) > 0 {
		fn = chain(middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		r.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, req); err != nil {
		r.errorHandler(ctx, err)
	}
}

// chain builds a single handler from a middleware stack and endpoint.
// The first middleware registered runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
