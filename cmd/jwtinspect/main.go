// Command jwtinspect serves the JWT analysis API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/jwtinspect/app/jwtinspect"
	"github.com/dmitrymomot/jwtinspect/core/config"
	"github.com/dmitrymomot/jwtinspect/core/health"
	"github.com/dmitrymomot/jwtinspect/core/history"
	"github.com/dmitrymomot/jwtinspect/core/logger"
	dbmongo "github.com/dmitrymomot/jwtinspect/integration/database/mongo"
	dbpg "github.com/dmitrymomot/jwtinspect/integration/database/pg"
	dbredis "github.com/dmitrymomot/jwtinspect/integration/database/redis"
	mongohistory "github.com/dmitrymomot/jwtinspect/integration/history/mongo"
	pghistory "github.com/dmitrymomot/jwtinspect/integration/history/pg"
	redishistory "github.com/dmitrymomot/jwtinspect/integration/history/redis"
	"github.com/dmitrymomot/jwtinspect/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg jwtinspect.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppName, cfg.Env),
		logger.WithLevelString(cfg.LogLevel),
		logger.WithContextExtractors(middleware.RequestIDExtractor()),
	}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithRotatingFile(cfg.LogFile, 100, 5))
	}
	log := logger.New(opts...)
	slog.SetDefault(log)

	store, checks, closeStore, err := openHistory(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to open history store",
			logger.Component("history"),
			slog.String("backend", cfg.HistoryBackend),
			logger.Error(err),
		)
		return err
	}
	defer closeStore()

	app, err := jwtinspect.NewApp(
		jwtinspect.WithConfig(cfg),
		jwtinspect.WithLogger(log),
		jwtinspect.WithHistoryStore(store),
		jwtinspect.WithHealthChecks(checks...),
	)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "starting jwtinspect",
		slog.String("addr", cfg.Server.Addr),
		slog.String("history_backend", cfg.HistoryBackend),
	)
	return app.Run(ctx)
}

// openHistory connects the configured history backend. The returned func
// releases its connections.
func openHistory(ctx context.Context, cfg jwtinspect.Config, log *slog.Logger) (history.Store, []health.Check, func(), error) {
	switch cfg.HistoryBackend {
	case "", jwtinspect.BackendMemory:
		return history.NewMemoryStore(history.WithMaxRecords(cfg.HistoryMaxRecords)), nil, func() {}, nil

	case jwtinspect.BackendMongo:
		db, err := dbmongo.NewWithDatabase(ctx, cfg.Mongo, "")
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Error("mongo disconnect failed", logger.Error(err))
			}
		}
		store := mongohistory.New(db, mongohistory.DefaultCollection)
		if err := store.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return store, []health.Check{dbmongo.Healthcheck(db.Client())}, closeFn, nil

	case jwtinspect.BackendPostgres:
		pool, err := dbpg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		db := dbpg.DB(pool)
		closeFn := func() {
			_ = db.Close()
			pool.Close()
		}
		if err := dbpg.Migrate(ctx, db, pghistory.Migrations(), log); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return pghistory.New(db), []health.Check{dbpg.Healthcheck(pool)}, closeFn, nil

	case jwtinspect.BackendRedis:
		client, err := dbredis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("redis close failed", logger.Error(err))
			}
		}
		store := redishistory.New(client, cfg.Redis.KeyPrefix)
		return store, []health.Check{dbredis.Healthcheck(client)}, closeFn, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
}
