package static

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// Default URL prefix and directory for static files.
const (
	DefaultPrefix = "/static/"
	DefaultRoot   = "static"
)

// Config holds static file settings.
type Config struct {
	Prefix string `env:"STATIC_PREFIX" envDefault:"/static/"`
	Root   string `env:"STATIC_ROOT" envDefault:"static"`
}

// Fallback serves files below a URL prefix from a root directory when no
// route matched.
type Fallback struct {
	prefix string
	root   string
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures a Fallback.
type Option func(*Fallback)

// WithPrefix sets the URL prefix. A trailing slash is added when missing.
func WithPrefix(prefix string) Option {
	return func(f *Fallback) {
		if prefix != "" {
			f.prefix = prefix
		}
	}
}

// WithFS serves files from fsys instead of the root directory,
// e.g. an embed.FS compiled into the binary.
func WithFS(fsys fs.FS) Option {
	return func(f *Fallback) {
		f.fsys = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fallback) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a fallback serving root under DefaultPrefix.
// The root does not have to exist; requests then simply do not match.
func New(root string, opts ...Option) *Fallback {
	if root == "" {
		root = DefaultRoot
	}
	f := &Fallback{
		prefix: DefaultPrefix,
		root:   filepath.Clean(root),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	if !strings.HasSuffix(f.prefix, "/") {
		f.prefix += "/"
	}
	return f
}

// NewFromConfig creates a fallback from configuration.
func NewFromConfig(cfg Config, opts ...Option) *Fallback {
	return New(cfg.Root, append([]Option{WithPrefix(cfg.Prefix)}, opts...)...)
}

// Prefix returns the URL prefix served by f.
func (f *Fallback) Prefix() string {
	return f.prefix
}

// Serve writes the file addressed by req.Path into resp as raw bytes. The
// part after the prefix is percent-decoded before it is resolved.
// It reports false when the path is outside the prefix, escapes the root, or
// does not name a regular file. No content type is set.
func (f *Fallback) Serve(req *request.Request, resp *response.Response) (bool, error) {
	rel, ok := strings.CutPrefix(req.Path, f.prefix)
	if !ok {
		return false, nil
	}
	rel, err := url.PathUnescape(rel)
	if err != nil || rel == "" || !fs.ValidPath(rel) {
		return false, nil
	}

	if f.fsys == nil {
		if err := validatePathSecurity(f.root, filepath.Join(f.root, filepath.FromSlash(rel))); err != nil {
			f.logger.WarnContext(req.Context(), "static path rejected",
				logger.Component("static"),
				logger.Path(req.Path),
				logger.Error(err),
			)
			return false, nil
		}
	}

	body, err := f.read(rel)
	if err != nil {
		if isNoMatch(err) || errors.Is(err, errNotRegular) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %w", ErrReadFile, rel, err)
	}

	resp.SetBytes(body)
	return true, nil
}

var errNotRegular = errors.New("not a regular file")

func (f *Fallback) read(rel string) ([]byte, error) {
	if f.fsys != nil {
		return readRegular(f.fsys, rel)
	}

	root, err := os.OpenRoot(f.root)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	return readRegular(root.FS(), rel)
}

func readRegular(fsys fs.FS, name string) ([]byte, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errNotRegular
	}
	return io.ReadAll(file)
}
