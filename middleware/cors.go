package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/jwtinspect/core/handler"
)

// CORSConfig configures cross-origin access.
type CORSConfig struct {
	Skip func(ctx handler.Context) bool
	// AllowOrigins lists allowed origins. Empty or "*" allows any origin.
	AllowOrigins []string
	// AllowMethods defaults to GET, HEAD, POST, PUT, PATCH, DELETE.
	AllowMethods []string
	// AllowHeaders defaults to the headers the API clients send.
	AllowHeaders  []string
	ExposeHeaders []string
	// AllowCredentials is ignored for wildcard origins.
	AllowCredentials bool
	// MaxAge caches preflight results, in seconds.
	MaxAge int
}

// CORS allows any origin with the default methods and headers.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig answers preflight requests itself and decorates other
// responses with the allow headers. Preflights from disallowed origins or
// for disallowed methods get 403.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"Accept", "Content-Type", "Origin", "Authorization", "X-Request-ID"}
	}
	if len(cfg.ExposeHeaders) == 0 {
		cfg.ExposeHeaders = []string{"X-Request-ID"}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")
	wildcard := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	resolve := func(origin string) (string, bool) {
		switch {
		case wildcard:
			return "*", true
		case origin != "" && slices.Contains(cfg.AllowOrigins, origin):
			return origin, true
		}
		return "", false
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			origin := req.Header.Get("Origin")
			allowedOrigin, allowed := resolve(origin)
			h := ctx.ResponseWriter().Header()
			h.Add("Vary", "Origin")

			requestMethod := req.Header.Get("Access-Control-Request-Method")
			if req.Method == http.MethodOptions && requestMethod != "" {
				return func(w http.ResponseWriter, r *http.Request) error {
					if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
						w.WriteHeader(http.StatusForbidden)
						return nil
					}
					h := w.Header()
					h.Set("Access-Control-Allow-Origin", allowedOrigin)
					h.Set("Access-Control-Allow-Methods", allowMethods)
					h.Set("Access-Control-Allow-Headers", allowHeaders)
					if cfg.AllowCredentials && allowedOrigin != "*" {
						h.Set("Access-Control-Allow-Credentials", "true")
					}
					if cfg.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
					}
					h.Add("Vary", "Access-Control-Request-Method")
					h.Add("Vary", "Access-Control-Request-Headers")
					w.WriteHeader(http.StatusNoContent)
					return nil
				}
			}

			if allowed {
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
				if cfg.AllowCredentials && allowedOrigin != "*" {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}
			return next(ctx)
		}
	}
}
