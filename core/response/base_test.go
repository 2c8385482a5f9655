package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/core/response"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		status  int
		want    int
	}{
		{name: "ok", content: "hello", status: http.StatusOK, want: http.StatusOK},
		{name: "zero status", content: "x", status: 0, want: http.StatusOK},
		{name: "empty body", content: "", status: http.StatusAccepted, want: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			err := response.StringWithStatus(tt.content, tt.status)(w, httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.content, w.Body.String())
		})
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("object", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.JSON(map[string]string{"jwt": "a.b.c"})(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"jwt":"a.b.c"}`, w.Body.String())
	})

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.JSONWithStatus(map[string]string{"error": "bad"}, http.StatusBadRequest)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"bad"}`, w.Body.String())
	})

	t.Run("nil with zero status", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.JSONWithStatus(nil, 0)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("unencodable", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		err := response.JSON(func() {})(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Error(t, err)
	})
}

func TestStatusAndError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, response.NoContent()(w, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, w.Code)

	sentinel := errors.New("nope")
	err := response.Error(sentinel)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, sentinel)
}
