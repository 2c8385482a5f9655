package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/logger"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger
	// LogLevel for successful requests. Default: info.
	LogLevel slog.Level
	// SlowRequestThreshold raises fast-path entries to warn. Default: 5s.
	SlowRequestThreshold time.Duration
	Component            string
}

// Logging logs one line per request through slog.Default.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger logs one line per request through log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, size and latency once the
// response has been rendered. 5xx log at error, 4xx and slow requests at
// warn. Request bodies are never logged: they carry tokens and secrets.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w}
				err := resp(rec, r)

				status := rec.finalStatus(err)
				elapsed := time.Since(start)
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(rec.size),
					logger.Duration(elapsed),
					logger.ClientIP(req.RemoteAddr),
					logger.UserAgent(req.UserAgent()),
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case elapsed > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(ctx, level, "http request", attrs...)
				return err
			}
		}
	}
}
