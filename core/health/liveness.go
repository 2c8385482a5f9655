package health

import (
	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/response"
)

// Liveness always answers "ALIVE". It checks no dependencies.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 without a body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
