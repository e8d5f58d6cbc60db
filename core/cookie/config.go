package cookie

import "net/http"

// Config provides environment-based default attributes for cookies the
// framework sets on its own, such as the session cookie.
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"0"`
}

// DefaultConfig returns a Config that produces bare "name=value; Path=/" cookies.
func DefaultConfig() Config {
	return Config{Path: "/"}
}

// Options converts the configuration into cookie options.
// Only non-zero values produce an option.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 6)
	if c.Path != "" {
		opts = append(opts, WithPath(c.Path))
	}
	if c.Domain != "" {
		opts = append(opts, WithDomain(c.Domain))
	}
	if c.MaxAge != 0 {
		opts = append(opts, WithMaxAge(c.MaxAge))
	}
	if c.Secure {
		opts = append(opts, WithSecure(true))
	}
	if c.HttpOnly {
		opts = append(opts, WithHTTPOnly(true))
	}
	if c.SameSite != 0 {
		opts = append(opts, WithSameSite(c.SameSite))
	}
	return opts
}
