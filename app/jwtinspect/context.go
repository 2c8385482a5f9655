package jwtinspect

import (
	"net/http"

	"github.com/dmitrymomot/jwtinspect/core/router"
	"github.com/dmitrymomot/jwtinspect/middleware"
)

// Context is the request context handed to every handler.
type Context struct {
	*router.Context
}

// RequestID returns the id assigned by the request id middleware.
func (c *Context) RequestID() string {
	id, _ := middleware.GetRequestID(c)
	return id
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}
