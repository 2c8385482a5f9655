package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/jwtinspect/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// writtenTracker is implemented by the router's response writer.
type writtenTracker interface {
	Written() bool
}

// convertToHTTPError maps any error to an HTTPError.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

func alreadyWritten(ctx handler.Context) bool {
	wt, ok := ctx.ResponseWriter().(writtenTracker)
	return ok && wt.Written()
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON HTTPError bodies.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
