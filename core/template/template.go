package template

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrymomot/skiff/core/response"
)

var (
	// ErrTemplateNotFound is returned when no template file exists for a name.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidName is returned for names that are not clean relative paths.
	ErrInvalidName = errors.New("invalid template name")
	// ErrParse is returned when a template file cannot be parsed.
	ErrParse = errors.New("failed to parse template")
	// ErrRender is returned when executing a template fails, e.g. on a missing variable.
	ErrRender = errors.New("failed to render template")
)

// DefaultDir is the default template directory.
const DefaultDir = "templates"

// Config holds template settings.
type Config struct {
	Dir   string `env:"TEMPLATE_DIR" envDefault:"templates"`
	Cache bool   `env:"TEMPLATE_CACHE" envDefault:"false"`
}

// Renderer loads named templates from a directory and renders them with a
// map of variables. A variable referenced by a template but absent from the
// map is an error.
type Renderer struct {
	fsys  fs.FS
	funcs template.FuncMap
	cache bool

	mu     sync.RWMutex
	parsed map[string]*template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFS loads templates from fsys instead of the directory.
func WithFS(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.fsys = fsys
		}
	}
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		for k, v := range funcs {
			r.funcs[k] = v
		}
	}
}

// WithCache keeps parsed templates in memory. Without it every Render
// re-reads the file, so edits show up without a restart.
func WithCache(enabled bool) Option {
	return func(r *Renderer) {
		r.cache = enabled
	}
}

// New creates a renderer reading templates from dir.
func New(dir string, opts ...Option) *Renderer {
	if dir == "" {
		dir = DefaultDir
	}
	r := &Renderer{
		fsys:   os.DirFS(dir),
		funcs:  template.FuncMap{},
		parsed: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig creates a renderer from configuration.
func NewFromConfig(cfg Config, opts ...Option) *Renderer {
	return New(cfg.Dir, append([]Option{WithCache(cfg.Cache)}, opts...)...)
}

// Render executes the template file name with vars and returns the output.
func (r *Renderer) Render(name string, vars map[string]any) (string, error) {
	tmpl, err := r.load(name)
	if err != nil {
		return "", err
	}

	if vars == nil {
		vars = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return buf.String(), nil
}

// Response renders name into an HTML response with status 200.
func (r *Renderer) Response(name string, vars map[string]any) (*response.Response, error) {
	body, err := r.Render(name, vars)
	if err != nil {
		return nil, err
	}
	return response.HTML(body), nil
}

func (r *Renderer) load(name string) (*template.Template, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if r.cache {
		r.mu.RLock()
		tmpl, ok := r.parsed[name]
		r.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	src, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(r.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}

	if r.cache {
		r.mu.Lock()
		r.parsed[name] = tmpl
		r.mu.Unlock()
	}
	return tmpl, nil
}
