package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/middleware"
	"github.com/dmitrymomot/skiff/pkg/ratelimiter"
)

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (*ratelimiter.Result, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).(*ratelimiter.Result)
	return res, args.Error(1)
}

func (m *mockLimiter) AllowN(ctx context.Context, key string, n int) (*ratelimiter.Result, error) {
	args := m.Called(ctx, key, n)
	res, _ := args.Get(0).(*ratelimiter.Result)
	return res, args.Error(1)
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newLimiter(t *testing.T, capacity int) ratelimiter.RateLimiter {
	t.Helper()
	l, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)
	return l
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("panics without limiter", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { middleware.RateLimit(middleware.RateLimitConfig{}) })
	})

	t.Run("allows then short-circuits with 429", func(t *testing.T) {
		t.Parallel()
		mw := middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:    newLimiter(t, 2),
			SetHeaders: true,
		})

		for i := range 2 {
			resp := response.New()
			out, err := mw(newRequest(t, http.MethodGet, nil), resp)
			require.NoError(t, err)
			assert.Nil(t, out)
			assert.Equal(t, "2", header(resp, "X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(1-i), header(resp, "X-RateLimit-Remaining"))
			assert.NotEmpty(t, header(resp, "X-RateLimit-Reset"))
			assert.Empty(t, header(resp, "Retry-After"))
		}

		out, err := mw(newRequest(t, http.MethodGet, nil), response.New())
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, http.StatusTooManyRequests, out.Status)
		assert.Equal(t, "0", header(out, "X-RateLimit-Remaining"))
		retry, err := strconv.Atoi(header(out, "Retry-After"))
		require.NoError(t, err)
		assert.Positive(t, retry)
	})

	t.Run("keys by client address", func(t *testing.T) {
		t.Parallel()
		mw := middleware.RateLimit(middleware.RateLimitConfig{Limiter: newLimiter(t, 1)})

		out, err := mw(newRequest(t, http.MethodGet, map[string]string{"X-Real-IP": "203.0.113.1"}), response.New())
		require.NoError(t, err)
		assert.Nil(t, out)

		out, err = mw(newRequest(t, http.MethodGet, map[string]string{"X-Real-IP": "203.0.113.2"}), response.New())
		require.NoError(t, err)
		assert.Nil(t, out)

		out, err = mw(newRequest(t, http.MethodGet, map[string]string{"X-Real-IP": "203.0.113.1"}), response.New())
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, http.StatusTooManyRequests, out.Status)
	})

	t.Run("custom key and error handler", func(t *testing.T) {
		t.Parallel()
		mw := middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:      newLimiter(t, 1),
			KeyExtractor: func(*request.Request) string { return "everyone" },
			ErrorHandler: func(_ *request.Request, res *ratelimiter.Result) *response.Response {
				return response.TextWithStatus("slow down", http.StatusServiceUnavailable)
			},
		})

		_, err := mw(newRequest(t, http.MethodGet, nil), response.New())
		require.NoError(t, err)
		out, err := mw(newRequest(t, http.MethodGet, map[string]string{"X-Real-IP": "203.0.113.9"}), response.New())
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, http.StatusServiceUnavailable, out.Status)
		assert.Equal(t, "slow down", out.Text())
		assert.Empty(t, header(out, "X-RateLimit-Limit"))
	})

	t.Run("limiter failure is returned", func(t *testing.T) {
		t.Parallel()
		limiter := &mockLimiter{}
		failure := errors.New("store down")
		limiter.On("Allow", mock.Anything, "192.0.2.1").Return(nil, failure)

		mw := middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter})
		out, err := mw(newRequest(t, http.MethodGet, nil), response.New())
		assert.ErrorIs(t, err, failure)
		assert.Nil(t, out)
		limiter.AssertExpectations(t)
	})
}
