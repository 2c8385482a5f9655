package jwtinspect

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/health"
	"github.com/dmitrymomot/jwtinspect/core/router"
	"github.com/dmitrymomot/jwtinspect/middleware"
)

// routes wires middleware and handlers onto app.router. A router passed in
// through WithRouter must not have routes yet.
func (app *App) routes() error {
	httpMetrics, err := middleware.NewHTTPMetrics(app.registry, metricsNamespace)
	if err != nil {
		return err
	}

	app.router.Use(
		middleware.RequestID[*Context](),
		middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
			Logger: app.logger,
			Skip:   isProbe,
		}),
		middleware.CORSWithConfig[*Context](middleware.CORSConfig{
			AllowOrigins: app.config.CORSAllowedOrigins,
		}),
		middleware.BodyLimitWithSize[*Context](app.config.MaxBodySize),
		middleware.Metrics[*Context](httpMetrics),
	)

	app.router.Route("/api", func(r router.Router[*Context]) {
		r.Post("/analyze", app.analyze)
		r.Post("/generate", app.generate)
		r.Get("/history", app.listHistory)
		r.Delete("/history/{id}", app.deleteHistory)
		r.Get("/algorithms", app.algorithms)
		r.Get("/health", app.apiHealth)
	})

	app.router.Get("/health/live", health.Liveness[*Context])
	app.router.Get("/health/ready", health.Readiness[*Context](app.logger, app.checks...))
	app.router.HandleHTTP("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{
		Registry: app.registry,
	}))

	return nil
}

func isProbe(ctx handler.Context) bool {
	switch ctx.Request().URL.Path {
	case "/health/live", "/health/ready", "/metrics":
		return true
	}
	return false
}
