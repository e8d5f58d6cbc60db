package template_test

import (
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/skiff/core/template"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemplate(t, dir, "hello.html", "<p>Hello, {{.Name}}</p>")

	r := template.New(dir)

	out, err := r.Render("hello.html", map[string]any{"Name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello, Ada</p>", out)

	out, err = r.Render("hello.html", map[string]any{"Name": "<script>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello, &lt;script&gt;</p>", out)
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemplate(t, dir, "hello.html", "Hello, {{.Name}}")
	writeTemplate(t, dir, "broken.html", "{{if}}")

	r := template.New(dir)

	_, err := r.Render("missing.html", nil)
	assert.ErrorIs(t, err, template.ErrTemplateNotFound)

	_, err = r.Render("hello.html", map[string]any{})
	assert.ErrorIs(t, err, template.ErrRender)

	_, err = r.Render("broken.html", nil)
	assert.ErrorIs(t, err, template.ErrParse)

	_, err = r.Render("../hello.html", nil)
	assert.ErrorIs(t, err, template.ErrInvalidName)
}

func TestRenderer_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemplate(t, dir, "page.html", "v1")

	cached := template.NewFromConfig(template.Config{Dir: dir, Cache: true})
	fresh := template.New(dir)

	out, err := cached.Render("page.html", nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", out)

	writeTemplate(t, dir, "page.html", "v2")

	out, err = cached.Render("page.html", nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", out)

	out, err = fresh.Render("page.html", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", out)
}

func TestRenderer_FSAndFuncs(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"shout.html": {Data: []byte("{{upper .Word}}")},
	}
	r := template.New("", template.WithFS(fsys), template.WithFuncs(htmltemplate.FuncMap{
		"upper": strings.ToUpper,
	}))

	out, err := r.Render("shout.html", map[string]any{"Word": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "HI", out)
}

func TestRenderer_Response(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemplate(t, dir, "hello.html", "Hello, {{.Name}}")

	resp, err := template.New(dir).Response("hello.html", map[string]any{"Name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "Hello, Ada", resp.Text())
	assert.Equal(t, "text/html; charset=utf-8", resp.Header["Content-Type"])
}
