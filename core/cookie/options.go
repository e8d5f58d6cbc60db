package cookie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Options configures cookie attributes for a Set-Cookie directive.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int // seconds; 0 omits the attribute, negative expires the cookie
	Expires  time.Time
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite

	// Extra holds attributes with no dedicated field, already in wire form.
	Extra []Attr
}

// Attr is a raw attribute in wire form, e.g. {Key: "Priority", Value: "High"}.
type Attr struct {
	Key   string
	Value string
}

// Option is a functional option for configuring cookie options.
type Option func(*Options)

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie max-age in seconds.
// Negative values delete the cookie immediately.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithExpires sets the absolute expiry time.
func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

// WithSecure sets the secure flag, ensuring cookies are only sent over HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly prevents JavaScript access to the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute for CSRF protection.
func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// WithAttr sets an attribute by its loose key name. Keys are matched
// case-insensitively and underscores are rewritten to hyphens, so "max_age",
// "Max-Age" and "max-age" all address the same attribute, as do "http_only"
// and "httponly". Unknown keys are kept as extra attributes in wire form.
func WithAttr(key string, value any) Option {
	return func(o *Options) {
		wire := WireKey(key)
		switch strings.ToLower(wire) {
		case "path":
			o.Path = toString(value)
		case "domain":
			o.Domain = toString(value)
		case "max-age":
			o.MaxAge = toSeconds(value)
		case "expires":
			if t, ok := value.(time.Time); ok {
				o.Expires = t
			} else if t, err := http.ParseTime(toString(value)); err == nil {
				o.Expires = t
			}
		case "secure":
			o.Secure = toBool(value)
		case "httponly", "http-only":
			o.HttpOnly = toBool(value)
		case "samesite", "same-site":
			o.SameSite = toSameSite(value)
		default:
			o.Extra = append(o.Extra, Attr{Key: wire, Value: toString(value)})
		}
	}
}

// WireKey rewrites an internal attribute key into its hyphenated wire form:
// "max_age" becomes "Max-Age", "same_site" becomes "Same-Site".
func WireKey(key string) string {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(key), "_", "-"), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, "-")
}

// applyOptions creates a new Options struct by copying base options and applying modifications.
// This prevents accidental mutation of shared defaults.
func applyOptions(base Options, opts []Option) Options {
	result := base
	if len(base.Extra) > 0 {
		result.Extra = append([]Attr(nil), base.Extra...)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toSeconds(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case time.Duration:
		return int(x / time.Second)
	default:
		n, err := strconv.Atoi(strings.TrimSpace(toString(v)))
		if err != nil {
			return 0
		}
		return n
	}
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return false
	default:
		s := strings.ToLower(strings.TrimSpace(toString(v)))
		return s != "" && s != "false" && s != "0" && s != "no"
	}
}

func toSameSite(v any) http.SameSite {
	if s, ok := v.(http.SameSite); ok {
		return s
	}
	switch strings.ToLower(toString(v)) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
