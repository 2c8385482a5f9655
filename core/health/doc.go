// Package health provides liveness and readiness probe handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, historySvc.Ping))
//
// Readiness runs every check concurrently and answers 503 when any fails.
package health
