package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type format int

const (
	formatText format = iota
	formatJSON
)

// ContextExtractor pulls an attribute out of a context. ok=false skips it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level       slog.Leveler
	format      format
	outputs     []io.Writer
	attrs       []slog.Attr
	extractors  []ContextExtractor
	handlerOpts *slog.HandlerOptions
}

// Option configures New.
type Option func(*config)

// New builds a logger. Without options it writes text at info to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{level: slog.LevelInfo, format: formatText}
	for _, opt := range opts {
		opt(cfg)
	}

	var out io.Writer = os.Stdout
	switch len(cfg.outputs) {
	case 0:
	case 1:
		out = cfg.outputs[0]
	default:
		out = io.MultiWriter(cfg.outputs...)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	if cfg.handlerOpts != nil {
		hopts = cfg.handlerOpts
		if hopts.Level == nil {
			hopts.Level = cfg.level
		}
	}

	var h slog.Handler
	if cfg.format == formatJSON {
		h = slog.NewJSONHandler(out, hopts)
	} else {
		h = slog.NewTextHandler(out, hopts)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return slog.New(h)
}

// WithDevelopment selects text output at debug level.
func WithDevelopment(service string) Option {
	return preset(service, "development", slog.LevelDebug, formatText)
}

// WithStaging selects JSON output at debug level.
func WithStaging(service string) Option {
	return preset(service, "staging", slog.LevelDebug, formatJSON)
}

// WithProduction selects JSON output at info level.
func WithProduction(service string) Option {
	return preset(service, "production", slog.LevelInfo, formatJSON)
}

// WithEnvironment picks a preset by name, falling back to development.
func WithEnvironment(service, env string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(service)
	case "staging", "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

func preset(service, env string, level slog.Level, f format) Option {
	return func(c *config) {
		c.level = level
		c.format = f
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", env))
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		if level != nil {
			c.level = level
		}
	}
}

// WithLevelString parses debug, info, warn or error. Unknown values are
// ignored.
func WithLevelString(level string) Option {
	return func(c *config) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			c.level = l
		}
	}
}

func WithJSONFormatter() Option { return func(c *config) { c.format = formatJSON } }
func WithTextFormatter() Option { return func(c *config) { c.format = formatText } }

// WithOutput adds a destination. Multiple outputs receive every record.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.outputs = append(c.outputs, w)
		}
	}
}

// WithRotatingFile adds a size-rotated log file next to stdout.
// maxSizeMB and maxBackups fall back to lumberjack defaults when zero.
func WithRotatingFile(path string, maxSizeMB, maxBackups int) Option {
	return func(c *config) {
		if path == "" {
			return
		}
		if len(c.outputs) == 0 {
			c.outputs = append(c.outputs, os.Stdout)
		}
		c.outputs = append(c.outputs, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			Compress:   true,
		})
	}
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions replaces the handler options. A nil Level keeps the
// configured level.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.handlerOpts = opts }
}

// WithContextExtractors adds extractors run for every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithContextValue logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	})
}

type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
