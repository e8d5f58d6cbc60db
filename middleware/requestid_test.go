package middleware_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()
		req := newRequest(t, http.MethodGet, nil)
		resp := response.New()

		out, err := middleware.RequestID()(req, resp)
		require.NoError(t, err)
		assert.Nil(t, out)

		id, ok := middleware.GetRequestID(req)
		require.True(t, ok)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, header(resp, middleware.DefaultRequestIDHeader))
	})

	t.Run("ignores incoming id by default", func(t *testing.T) {
		t.Parallel()
		req := newRequest(t, http.MethodGet, map[string]string{"X-Request-ID": "upstream"})
		_, err := middleware.RequestID()(req, response.New())
		require.NoError(t, err)
		assert.NotEqual(t, "upstream", req.RequestID())
	})

	t.Run("uses existing id", func(t *testing.T) {
		t.Parallel()
		req := newRequest(t, http.MethodGet, map[string]string{"X-Trace": "upstream"})
		resp := response.New()
		mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			HeaderName:  "X-Trace",
			UseExisting: true,
		})
		_, err := mw(req, resp)
		require.NoError(t, err)
		assert.Equal(t, "upstream", req.RequestID())
		assert.Equal(t, "upstream", header(resp, "X-Trace"))
	})

	t.Run("custom generator and skip", func(t *testing.T) {
		t.Parallel()
		mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return "fixed" },
			Skip:      func(req *request.Request) bool { return req.Method == http.MethodHead },
		})

		req := newRequest(t, http.MethodGet, nil)
		_, err := mw(req, response.New())
		require.NoError(t, err)
		assert.Equal(t, "fixed", req.RequestID())

		skipped := newRequest(t, http.MethodHead, nil)
		_, err = mw(skipped, response.New())
		require.NoError(t, err)
		_, ok := middleware.GetRequestID(skipped)
		assert.False(t, ok)
	})
}
