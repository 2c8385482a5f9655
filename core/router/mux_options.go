package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/jwtinspect/core/handler"
)

// Option configures a router created by New.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the plain text error handler. Mounted
// sub-routers inherit it.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware is Use at construction time.
func WithMiddleware[C handler.Context](mws ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) { m.middlewares = append(m.middlewares, mws...) }
}

// WithContextFactory builds the per-request context. Required for any C
// other than *Context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		if f != nil {
			m.newContext = f
		}
	}
}

// WithLogger receives recovered panics and render failures.
func WithLogger[C handler.Context](log *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if log != nil {
			m.logger = log
		}
	}
}
