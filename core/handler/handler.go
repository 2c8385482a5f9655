package handler

import "net/http"

// Response renders the outcome of a handler. The router invokes it with the
// live writer; a returned error is passed to the ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc serves one request.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler writes a response for an error raised while serving ctx.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware decorates a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
