package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/logger"
	"github.com/dmitrymomot/jwtinspect/core/response"
	"github.com/dmitrymomot/jwtinspect/core/router"
	"github.com/dmitrymomot/jwtinspect/middleware"
)

type ctx = *router.Context

func newRouter(mws ...handler.Middleware[ctx]) router.Router[ctx] {
	r := router.New[ctx](router.WithErrorHandler(response.JSONErrorHandler[ctx]))
	r.Use(mws...)
	return r
}

func ok(c ctx) handler.Response { return response.String("ok") }

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generated and visible to handler", func(t *testing.T) {
		t.Parallel()
		r := newRouter(middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{
			Generator: func() string { return "fixed" },
		}))
		r.Get("/", func(c ctx) handler.Response {
			id, _ := middleware.GetRequestID(c)
			return response.String(id)
		})

		rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", rec.Body.String())
		assert.Equal(t, "fixed", rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses client id when configured", func(t *testing.T) {
		t.Parallel()
		r := newRouter(middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{UseExisting: true}))
		r.Get("/", ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-1")
		assert.Equal(t, "client-1", serve(r, req).Header().Get("X-Request-ID"))
	})

	t.Run("present on error responses", func(t *testing.T) {
		t.Parallel()
		r := newRouter(middleware.RequestID[ctx]())
		r.Get("/", ok)

		rec := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(middleware.RequestIDExtractor()),
	)
	r := newRouter(
		middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{Generator: func() string { return "rid" }}),
		middleware.LoggingWithLogger[ctx](log),
	)
	r.Post("/api/analyze", ok)
	r.Get("/fail", func(c ctx) handler.Response {
		return response.Error(response.ErrBadRequest.WithMessage("jwt is required"))
	})

	serve(r, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"jwt":"secret-token"}`)))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/api/analyze", entry["path"])
	assert.EqualValues(t, 200, entry["status_code"])
	assert.EqualValues(t, 2, entry["bytes_out"])
	assert.Equal(t, "rid", entry["request_id"])
	assert.NotContains(t, buf.String(), "secret-token")

	buf.Reset()
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 400, entry["status_code"])
	assert.Equal(t, "jwt is required", entry["error"])
}

func TestCORS(t *testing.T) {
	t.Parallel()

	r := newRouter(middleware.CORSWithConfig[ctx](middleware.CORSConfig{
		AllowOrigins:     []string{"https://app.example"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	r.Post("/api/generate", ok)

	t.Run("simple request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
		req.Header.Set("Origin", "https://app.example")
		rec := serve(r, req)
		assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight on POST-only route", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := serve(r, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		req.Header.Set("Origin", "https://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

		req = httptest.NewRequest(http.MethodPost, "/api/generate", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := serve(r, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		t.Parallel()
		wr := newRouter(middleware.CORSWithConfig[ctx](middleware.CORSConfig{AllowCredentials: true}))
		wr.Get("/", ok)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://any.example")
		rec := serve(wr, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	r := newRouter(middleware.BodyLimitWithSize[ctx](8))
	r.Post("/", func(c ctx) handler.Response {
		_, err := io.ReadAll(c.Request().Body)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return response.Error(response.ErrRequestEntityTooLarge)
		}
		return response.String("read")
	})

	rec := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, "read", rec.Body.String())

	rec = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body exceeds 8 bytes")

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("far too large")))
	req.ContentLength = -1
	rec = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := middleware.NewHTTPMetrics(reg, "jwtinspect")
	require.NoError(t, err)

	r := newRouter(middleware.Metrics[ctx](m))
	r.Delete("/api/history/{id}", func(c ctx) handler.Response {
		return response.Error(response.ErrNotFound)
	})
	r.Get("/ok", ok)

	serve(r, httptest.NewRequest(http.MethodDelete, "/api/history/a", nil))
	serve(r, httptest.NewRequest(http.MethodDelete, "/api/history/b", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	expected := `
# HELP jwtinspect_http_requests_total HTTP requests by method, route and status.
# TYPE jwtinspect_http_requests_total counter
jwtinspect_http_requests_total{method="DELETE",route="/api/history/{id}",status="404"} 2
jwtinspect_http_requests_total{method="GET",route="/ok",status="200"} 1
jwtinspect_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(reg, strings.NewReader(expected), "jwtinspect_http_requests_total"))

	_, err = middleware.NewHTTPMetrics(reg, "jwtinspect")
	assert.Error(t, err)
}

func TestRequestIDExtractorSkipsMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, found := middleware.RequestIDExtractor()(req.Context())
	assert.False(t, found)
}
