package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/jwtinspect/core/handler"
)

// mux is the private implementation of Router on top of a chi route tree.
type mux[C handler.Context] struct {
	routes       chi.Router
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	parent       *mux[C] // inline groups and mounted sub-routers
	inline       bool
	hasRoutes    bool
}

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		routes:       chi.NewRouter(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			// Only the default *Context works without a factory.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	m.routes.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.fail(w, r, ErrNotFound)
	})
	m.routes.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		m.fail(w, r, ErrMethodNotAllowed)
	})

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.routes.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !allowedMethods[method] {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

func (m *mux[C]) HandleHTTP(pattern string, h http.Handler) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	m.handle("", pattern, func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			h.ServeHTTP(w, r)
			return nil
		}
	})
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates an inline router sharing this router's routes, with
// additional middleware applied to the routes registered through it.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		routes:       m.routes.With(),
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		parent:       m,
		inline:       true,
	}
}

// Group creates an inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a new sub-router mounted at the given pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	sub := newMux[C]()
	sub.errorHandler = m.errorHandler
	sub.newContext = m.newContext
	sub.logger = m.logger
	sub.parent = m

	fn(sub)
	m.Mount(pattern, sub)
	return sub
}

// Mount attaches a sub-router at the given pattern. The sub-router inherits
// the error handler, logger and context factory, and runs behind this
// router's middleware.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("router: can only mount routers created by router.New")
	}

	subMux.errorHandler = m.errorHandler
	subMux.logger = m.logger
	subMux.newContext = m.newContext
	subMux.parent = m

	m.hasRoutes = true
	m.routes.Mount(pattern, subMux.routes)
}

// Routes returns all registered routes, including mounted ones.
func (m *mux[C]) Routes() []Route {
	var out []Route
	_ = chi.Walk(m.routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, Route{Method: method, Pattern: route})
		return nil
	})
	return out
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if fn == nil {
		panic(fmt.Errorf("%w: nil handler for '%s'", ErrInvalidPattern, pattern))
	}

	for curr := m; curr != nil; curr = curr.parent {
		curr.hasRoutes = true
		if !curr.inline {
			break
		}
	}

	h := func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, fn)
	}
	if method == "" {
		m.routes.HandleFunc(pattern, h)
		return
	}
	m.routes.MethodFunc(method, pattern, h)
}

// fail reports err through the error handler. The middleware chain still
// runs so that request ids, logging and CORS preflight see the request.
func (m *mux[C]) fail(w http.ResponseWriter, r *http.Request, err error) {
	m.serve(w, r, func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return err }
	})
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r, urlParams(r))

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	if mws := m.chainMiddlewares(); len(mws) > 0 {
		fn = chain(mws, fn)
	}

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}
	if err := resp(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

// chainMiddlewares collects middleware from the outermost router down to m.
func (m *mux[C]) chainMiddlewares() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for curr := m; curr != nil; curr = curr.parent {
		if len(curr.middlewares) > 0 {
			all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
		}
	}
	return all
}

// chain wraps endpoint so that the first middleware runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
