// Package middleware holds the HTTP middleware the service mounts in front
// of every route: request ids, access logging, CORS, body size limits and
// Prometheus metrics.
//
// Each middleware is generic over the handler context and has a default
// constructor plus a WithConfig variant:
//
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.CORSWithConfig[*router.Context](middleware.CORSConfig{AllowOrigins: origins}),
//		middleware.BodyLimitWithSize[*router.Context](1 << 20),
//		middleware.Metrics[*router.Context](httpMetrics),
//	)
package middleware
