package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/logger"
	"github.com/dmitrymomot/jwtinspect/core/response"
)

// DefaultCheckTimeout bounds a single readiness probe.
const DefaultCheckTimeout = 5 * time.Second

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Readiness answers "READY" when every check passes, 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(ctx C) handler.Response {
		if err := Run(ctx, checks...); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}
		return response.String("READY")
	}
}

// Run executes checks concurrently under DefaultCheckTimeout and returns
// the first failure.
func Run(ctx context.Context, checks ...Check) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, check := range checks {
		if check == nil {
			continue
		}
		g.Go(func() error { return check(gctx) })
	}
	return g.Wait()
}
