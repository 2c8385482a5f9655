// Package logger builds slog loggers and provides nil-safe attribute helpers.
//
//	log := logger.New(
//		logger.WithProduction("jwtinspect"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//		logger.WithRotatingFile("/var/log/jwtinspect.log", 100, 5),
//	)
//	log.InfoContext(ctx, "analysis recorded", logger.Component("history"), logger.Error(err))
//
// Presets set the level and format for an environment: development is
// text at debug, staging is JSON at debug, production is JSON at info.
// Later options override earlier ones.
//
// Attribute helpers return an empty slog.Attr for nil or empty input,
// which slog drops, so callers never need to guard them.
package logger
