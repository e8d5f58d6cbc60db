package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/middleware"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	t.Run("stores address", func(t *testing.T) {
		t.Parallel()
		req := newRequest(t, http.MethodGet, map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
		resp := response.New()

		out, err := middleware.ClientIP()(req, resp)
		require.NoError(t, err)
		assert.Nil(t, out)

		ip, ok := middleware.GetClientIP(req)
		assert.True(t, ok)
		assert.Equal(t, "203.0.113.7", ip)
		assert.Empty(t, header(resp, "X-Client-IP"))
	})

	t.Run("remote address fallback and header", func(t *testing.T) {
		t.Parallel()
		req := newRequest(t, http.MethodGet, nil)
		resp := response.New()

		_, err := middleware.ClientIPWithConfig(middleware.ClientIPConfig{StoreInHeader: true})(req, resp)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.1", header(resp, "X-Client-IP"))
	})

	t.Run("validation rejects with 403", func(t *testing.T) {
		t.Parallel()
		mw := middleware.ClientIPWithConfig(middleware.ClientIPConfig{
			ValidateFunc: func(_ *request.Request, ip string) error {
				if ip == "192.0.2.1" {
					return errors.New("blocked")
				}
				return nil
			},
		})

		out, err := mw(newRequest(t, http.MethodGet, nil), response.New())
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, http.StatusForbidden, out.Status)

		out, err = mw(newRequest(t, http.MethodGet, map[string]string{"X-Real-IP": "198.51.100.1"}), response.New())
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("not stored without middleware", func(t *testing.T) {
		t.Parallel()
		_, ok := middleware.GetClientIP(newRequest(t, http.MethodGet, nil))
		assert.False(t, ok)
	})
}
