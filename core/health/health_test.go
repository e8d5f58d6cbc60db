package health_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/health"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

func newRequest(t *testing.T) *request.Request {
	t.Helper()
	req, err := request.Build(context.Background(), request.Input{Method: http.MethodGet, Target: "/health"})
	require.NoError(t, err)
	return req
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	v, err := health.Liveness(newRequest(t), nil)
	require.NoError(t, err)
	assert.Equal(t, "ALIVE", v)
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	v, err := health.NoContent(newRequest(t), nil)
	require.NoError(t, err)
	resp, ok := v.(*response.Response)
	require.True(t, ok)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Body())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()
		v, err := health.Readiness(nil, ok, ok)(newRequest(t), nil)
		require.NoError(t, err)
		assert.Equal(t, "READY", v)
	})

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		v, err := health.Readiness(nil)(newRequest(t), nil)
		require.NoError(t, err)
		assert.Equal(t, "READY", v)
	})

	t.Run("failure stops and logs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		called := false
		failing := func(context.Context) error { return errors.New("db down") }
		after := func(context.Context) error { called = true; return nil }

		v, err := health.Readiness(log, ok, failing, after)(newRequest(t), nil)
		require.NoError(t, err)
		resp, isResp := v.(*response.Response)
		require.True(t, isResp)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
		assert.NotContains(t, resp.Text(), "db down")
		assert.False(t, called)
		assert.Contains(t, buf.String(), "db down")
	})
}
