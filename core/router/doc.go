// Package router maps HTTP routes to type-safe handlers.
//
// Routes are matched by chi; this package layers the handler model from
// core/handler on top: every request gets a context C built by the
// configured factory, handlers return a handler.Response, and any error
// returned while rendering (or recovered from a panic) goes to a single
// error handler.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Route("/api", func(api router.Router[*router.Context]) {
//		api.Get("/history", listHistory)
//		api.Delete("/history/{id}", deleteHistory)
//	})
//
// Path parameters use chi syntax ({id}, {id:[0-9]+}, *) and are read with
// ctx.Param. Middleware registered with Use applies to every route of the
// router and of routers mounted below it; Use must precede route
// registration.
//
// Unmatched paths and methods reach the error handler as ErrNotFound and
// ErrMethodNotAllowed. A nil handler.Response is reported as ErrNilResponse.
// Panics are wrapped in an error implementing PanicError.
package router
