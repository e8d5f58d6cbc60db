package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxCookieSize is the maximum size of a serialized Set-Cookie value (4KB).
const MaxCookieSize = 4096

// Cookie is a single Set-Cookie directive: a name, a value and its attributes.
type Cookie struct {
	Name    string
	Value   string
	Options Options
}

// New builds a cookie directive with the given attributes applied in order.
func New(name, value string, opts ...Option) Cookie {
	return Cookie{
		Name:    name,
		Value:   value,
		Options: applyOptions(Options{}, opts),
	}
}

// HTTP converts the directive into a net/http cookie.
// Attributes without a net/http field (see Options.Extra) are not included.
func (c Cookie) HTTP() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Options.Path,
		Domain:   c.Options.Domain,
		Expires:  c.Options.Expires,
		Secure:   c.Options.Secure,
		HttpOnly: c.Options.HttpOnly,
		SameSite: c.Options.SameSite,
	}
	switch {
	case c.Options.MaxAge > 0:
		hc.MaxAge = c.Options.MaxAge
	case c.Options.MaxAge < 0:
		hc.MaxAge = -1
	}
	return hc
}

// Validate reports whether the directive can be written to the wire.
func (c Cookie) Validate() error {
	if err := c.HTTP().Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, fmt.Errorf("cookie %q: %w", c.Name, err))
	}
	for _, a := range c.Options.Extra {
		if err := a.validate(); err != nil {
			return errors.Join(ErrInvalidCookie, fmt.Errorf("cookie %q: %w", c.Name, err))
		}
	}
	if size := len(c.String()); size > MaxCookieSize {
		return ErrCookieTooLarge{Name: c.Name, Size: size, Max: MaxCookieSize}
	}
	return nil
}

// validate requires the key to be an RFC 6265 token and the value to hold no
// ';' or control characters, so an extra attribute cannot smuggle in others.
func (a Attr) validate() error {
	if a.Key == "" || strings.IndexFunc(a.Key, func(r rune) bool { return !isTokenChar(r) }) >= 0 {
		return fmt.Errorf("invalid attribute name %q", a.Key)
	}
	if strings.IndexFunc(a.Value, func(r rune) bool { return r == ';' || r < 0x20 || r == 0x7f }) >= 0 {
		return fmt.Errorf("invalid value for attribute %q", a.Key)
	}
	return nil
}

func isTokenChar(r rune) bool {
	if r <= ' ' || r >= 0x7f {
		return false
	}
	return !strings.ContainsRune(`()<>@,;:\"/[]?={}`, r)
}

// String serializes the directive in Set-Cookie wire format, e.g.
// "SESSION_ID=abc123; Path=/". Returns an empty string for invalid names.
func (c Cookie) String() string {
	s := c.HTTP().String()
	if s == "" {
		return ""
	}
	if len(c.Options.Extra) == 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(s)
	for _, a := range c.Options.Extra {
		b.WriteString("; ")
		b.WriteString(a.Key)
		if a.Value != "" {
			b.WriteByte('=')
			b.WriteString(a.Value)
		}
	}
	return b.String()
}

// Parse decodes a Cookie request header into a name/value map.
// Malformed pairs are skipped; an empty header yields an empty map.
// When a name repeats, the first occurrence wins.
func Parse(header string) map[string]string {
	result := make(map[string]string)
	if strings.TrimSpace(header) == "" {
		return result
	}

	r := &http.Request{Header: http.Header{"Cookie": {header}}}
	for _, c := range r.Cookies() {
		if _, exists := result[c.Name]; !exists {
			result[c.Name] = c.Value
		}
	}
	return result
}
