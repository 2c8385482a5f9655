// Package handler defines the request model shared by the router, the
// middleware and the application handlers.
//
// A HandlerFunc receives a Context and returns a Response instead of
// writing to the connection directly:
//
//	func analyze(ctx *jwtinspect.Context) handler.Response {
//		if ctx.Param("id") == "" {
//			return response.Error(response.ErrBadRequest)
//		}
//		return response.JSON(result)
//	}
//
// The router calls the returned Response with the real writer. A non-nil
// error from the Response goes to the router's ErrorHandler, which is also
// where panics and unmatched routes end up.
//
// Middleware wraps a HandlerFunc and may inspect or replace the Response:
//
//	func timing[C handler.Context](next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//		return func(ctx C) handler.Response {
//			start := time.Now()
//			resp := next(ctx)
//			return func(w http.ResponseWriter, r *http.Request) error {
//				w.Header().Set("X-Elapsed", time.Since(start).String())
//				return resp(w, r)
//			}
//		}
//	}
//
// Context is generic so applications can carry their own helpers; any type
// satisfying the interface works, router.Context being the plain one.
package handler
