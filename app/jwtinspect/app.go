package jwtinspect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/jwtinspect/core/analyzer"
	"github.com/dmitrymomot/jwtinspect/core/binder"
	"github.com/dmitrymomot/jwtinspect/core/config"
	"github.com/dmitrymomot/jwtinspect/core/health"
	"github.com/dmitrymomot/jwtinspect/core/history"
	"github.com/dmitrymomot/jwtinspect/core/logger"
	"github.com/dmitrymomot/jwtinspect/core/response"
	"github.com/dmitrymomot/jwtinspect/core/router"
	"github.com/dmitrymomot/jwtinspect/core/server"
	"github.com/dmitrymomot/jwtinspect/pkg/claims"
)

const metricsNamespace = "jwtinspect"

type App struct {
	config   Config
	router   router.Router[*Context]
	server   *server.Server
	logger   *slog.Logger
	analyzer *analyzer.Analyzer
	store    history.Store
	history  *history.Service
	registry *prometheus.Registry
	metrics  *Metrics
	checks   []health.Check
	bind     func(*http.Request, any) error
}

type AppOption func(*App) error

// NewApp loads Config from the environment, applies opts and registers the
// routes. Anything not supplied through an option is built from Config;
// history falls back to an in-memory store.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithEnvironment(app.config.AppName, app.config.Env),
			logger.WithLevelString(app.config.LogLevel),
		)
	}

	if app.analyzer == nil {
		app.analyzer = analyzer.New(analyzer.WithValidator(claims.New(
			claims.WithLeeway(app.config.ClockLeeway),
			claims.WithAllowNone(app.config.AllowAlgNone),
		)))
	}

	if app.store == nil {
		app.store = history.NewMemoryStore(history.WithMaxRecords(app.config.HistoryMaxRecords))
	}
	svc, err := history.NewService(app.store, history.WithListLimit(app.config.HistoryLimit))
	if err != nil {
		return nil, err
	}
	app.history = svc
	app.checks = append(app.checks, svc.Ping)

	if app.registry == nil {
		app.registry = prometheus.NewRegistry()
		app.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if app.metrics, err = NewMetrics(app.registry, metricsNamespace); err != nil {
		return nil, err
	}

	app.bind = binder.JSON(binder.WithMaxSize(app.config.MaxBodySize))

	if app.router == nil {
		app.router = router.New(
			router.WithContextFactory(newContext),
			router.WithErrorHandler(response.JSONErrorHandler[*Context]),
			router.WithLogger[*Context](app.logger),
		)
	}
	if err := app.routes(); err != nil {
		return nil, err
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

// Handler exposes the routed API, mainly for tests.
func (app *App) Handler() http.Handler { return app.router }

// Run serves until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.router))
	return g.Wait()
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(router router.Router[*Context]) AppOption {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithAnalyzer(a *analyzer.Analyzer) AppOption {
	return func(app *App) error {
		if a == nil {
			return errors.New("analyzer cannot be nil")
		}
		app.analyzer = a
		return nil
	}
}

// WithHistoryStore selects the history backend.
func WithHistoryStore(store history.Store) AppOption {
	return func(app *App) error {
		if store == nil {
			return history.ErrNilStore
		}
		app.store = store
		return nil
	}
}

// WithRegistry collects metrics into reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) AppOption {
	return func(app *App) error {
		if reg == nil {
			return errors.New("registry cannot be nil")
		}
		app.registry = reg
		return nil
	}
}

// WithHealthChecks adds readiness checks, e.g. database pings.
func WithHealthChecks(checks ...health.Check) AppOption {
	return func(app *App) error {
		app.checks = append(app.checks, checks...)
		return nil
	}
}
