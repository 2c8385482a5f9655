// Package response builds handler.Response values and renders errors.
//
// Handlers return a response instead of writing to the writer directly:
//
//	func listHistory(ctx *router.Context) handler.Response {
//		recs, err := svc.List(ctx)
//		if err != nil {
//			return response.Error(response.ErrServiceUnavailable.WithError(err))
//		}
//		return response.JSON(recs)
//	}
//
// Errors returned by a response reach the router's error handler.
// JSONErrorHandler renders them as {"code", "message", "details"} using
// HTTPError when the error is one, the StatusCode() method when the error
// has one, and 500 otherwise.
package response
