package middleware_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

func newRequest(t *testing.T, method string, headers map[string]string) *request.Request {
	t.Helper()
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	req, err := request.Build(context.Background(), request.Input{
		Method:     method,
		Target:     "/",
		Header:     h,
		RemoteAddr: "192.0.2.1:4321",
	})
	require.NoError(t, err)
	return req
}

func header(resp *response.Response, key string) string {
	return resp.Header[http.CanonicalHeaderKey(key)]
}
