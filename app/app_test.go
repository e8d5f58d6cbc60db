package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/app"
	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/core/server"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/static"
	"github.com/dmitrymomot/skiff/core/template"
)

func testConfig(t *testing.T) app.Config {
	t.Helper()
	dir := t.TempDir()

	staticDir := filepath.Join(dir, "static")
	require.NoError(t, os.MkdirAll(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.css"), []byte("body{}"), 0o644))

	tmplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tmplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "page.html"), []byte("<h1>{{.title}}</h1>"), 0o644))

	cfg := app.Config{
		Server:   server.DefaultConfig(),
		Session:  session.DefaultConfig(),
		Static:   static.Config{Prefix: "/static/", Root: staticDir},
		Template: template.Config{Dir: tmplDir},
	}
	cfg.Server.Addr = "127.0.0.1:0"
	return cfg
}

func newApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	a, err := app.NewFromConfig(testConfig(t), append([]app.Option{app.WithLogger(logger.Discard())}, opts...)...)
	require.NoError(t, err)
	return a
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	a.Get("/hello/<name>", func(_ *request.Request, p handler.Params) (any, error) {
		return "Hello, " + p.Get("name"), nil
	})
	a.Post("/echo", func(req *request.Request, _ handler.Params) (any, error) {
		return req.Form.Get("msg"), nil
	})
	a.Route("/both", func(req *request.Request, _ handler.Params) (any, error) {
		return req.Method, nil
	}, http.MethodGet, http.MethodPut)

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello/Ada", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Hello, Ada", rec.Body.String())
	})

	t.Run("post form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("msg=hi+there"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, req)
		assert.Equal(t, "hi there", rec.Body.String())
	})

	t.Run("custom methods", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/both", nil))
		assert.Equal(t, "PUT", rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestApp_Static(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestApp_RenderTemplate(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	a.Get("/page", func(_ *request.Request, _ handler.Params) (any, error) {
		return a.RenderTemplate("page.html", map[string]any{"title": "Welcome"})
	})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>Welcome</h1>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestApp_SessionsPersistAcrossRequests(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	a := newApp(t, app.WithSessionStore(store))
	a.Get("/count", func(req *request.Request, _ handler.Params) (any, error) {
		n := req.Session.Update("count", func(old any, ok bool) any {
			if !ok {
				return 1
			}
			return old.(int) + 1
		})
		return n, nil
	})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/count", nil))
	require.Equal(t, "1", rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.DefaultCookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/count", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	assert.Equal(t, "2", rec.Body.String())
	assert.Equal(t, 1, store.Len())
	assert.Same(t, store, a.Sessions().Store())
}

func TestApp_Middleware(t *testing.T) {
	t.Parallel()

	deny := func(req *request.Request, _ *response.Response) (*response.Response, error) {
		if req.Path == "/admin" {
			return response.TextWithStatus("forbidden", http.StatusForbidden), nil
		}
		return nil, nil
	}
	tag := func(_ *request.Request, resp *response.Response) (*response.Response, error) {
		resp.SetHeader("X-App", "skiff")
		return nil, nil
	}

	a := newApp(t, app.WithMiddleware(deny))
	a.Use(tag)
	a.Get("/admin", func(_ *request.Request, _ handler.Params) (any, error) {
		return "secret", nil
	})
	a.Get("/open", func(_ *request.Request, _ handler.Params) (any, error) {
		return "ok", nil
	})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", rec.Body.String())

	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "skiff", rec.Header().Get("X-App"))
}

func TestApp_Options(t *testing.T) {
	t.Parallel()

	cases := map[string]app.Option{
		"logger":   app.WithLogger(nil),
		"server":   app.WithServer(nil),
		"sessions": app.WithSessionManager(nil),
		"store":    app.WithSessionStore(nil),
		"renderer": app.WithRenderer(nil),
		"db":       app.WithDB(nil),
		"worker":   app.WithWorker(nil),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := app.NewFromConfig(testConfig(t), opt)
			assert.Error(t, err)
		})
	}

	t.Run("missing server address", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.Server.Addr = ""
		_, err := app.NewFromConfig(cfg)
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("no database by default", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, newApp(t).DB())
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	worker := func(ctx context.Context) func() error {
		return func() error {
			close(started)
			<-ctx.Done()
			return nil
		}
	}

	a := newApp(t, app.WithWorker(worker))
	a.Get("/", func(_ *request.Request, _ handler.Params) (any, error) {
		return "root", nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	<-started
	require.Eventually(t, func() bool {
		return a.Addr() != "127.0.0.1:0"
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + a.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "root", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
