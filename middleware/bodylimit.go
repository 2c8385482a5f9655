package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/response"
)

// DefaultBodyLimit matches the MAX_BODY_SIZE default.
const DefaultBodyLimit int64 = 1 << 20

// BodyLimitConfig configures the request body limit.
type BodyLimitConfig struct {
	Skip    func(ctx handler.Context) bool
	MaxSize int64
}

// BodyLimit caps request bodies at DefaultBodyLimit.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize caps request bodies at maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects a declared Content-Length over the limit with
// 413 up front and wraps the body in http.MaxBytesReader so undeclared
// oversize bodies fail while being read.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if req.ContentLength > cfg.MaxSize {
				return response.Error(response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("request body exceeds %d bytes", cfg.MaxSize)).
					WithDetails(map[string]any{"limit": cfg.MaxSize, "size": req.ContentLength}))
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, cfg.MaxSize)
			}
			return next(ctx)
		}
	}
}
