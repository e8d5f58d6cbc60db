package request

// DefaultMaxBodySize is the default limit for request bodies (10MB).
const DefaultMaxBodySize int64 = 10 << 20

// Config holds request parsing settings.
type Config struct {
	MaxBodySize int64 `env:"REQUEST_MAX_BODY_SIZE" envDefault:"10485760"`
}

// Option configures request parsing.
type Option func(*Config)

// WithMaxBodySize sets the largest body Build will read.
// Non-positive values fall back to DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(c *Config) {
		c.MaxBodySize = n
	}
}

// Options converts the config into options for Build.
func (c Config) Options() []Option {
	return []Option{WithMaxBodySize(c.MaxBodySize)}
}

func applyOptions(opts []Option) Config {
	cfg := Config{MaxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	return cfg
}
