package response

import (
	"fmt"
	"maps"
	"net/http"

	"github.com/dmitrymomot/skiff/core/cookie"
)

// Response accumulates status, headers, cookies and body until it is written.
// The body is either text or raw bytes, never both.
type Response struct {
	Status int
	Header map[string]string

	cookies []cookie.Cookie
	text    string
	bytes   []byte
	binary  bool
}

// New returns an empty 200 OK text response.
func New() *Response {
	return &Response{
		Status: http.StatusOK,
		Header: make(map[string]string),
	}
}

// Text creates a 200 OK response with a text body.
func Text(body string) *Response {
	r := New()
	r.SetText(body)
	return r
}

// TextWithStatus creates a text response with a custom status code.
func TextWithStatus(body string, status int) *Response {
	r := Text(body)
	if status != 0 {
		r.Status = status
	}
	return r
}

// HTML creates a 200 OK text response with an HTML content type.
func HTML(body string) *Response {
	r := Text(body)
	r.Header["Content-Type"] = "text/html; charset=utf-8"
	return r
}

// Bytes creates a 200 OK response with a raw body and an optional content type.
func Bytes(body []byte, contentType string) *Response {
	r := New()
	r.SetBytes(body)
	if contentType != "" {
		r.Header["Content-Type"] = contentType
	}
	return r
}

// Redirect creates a redirect response to the given location.
// Status defaults to 302 Found when zero.
func Redirect(location string, status int) *Response {
	if status == 0 {
		status = http.StatusFound
	}
	r := New()
	r.Status = status
	r.Header["Location"] = location
	return r
}

// SetText replaces the body with text.
func (r *Response) SetText(body string) {
	r.text = body
	r.bytes = nil
	r.binary = false
}

// SetBytes replaces the body with raw bytes.
func (r *Response) SetBytes(body []byte) {
	r.bytes = body
	r.text = ""
	r.binary = true
}

// SetBody stores a handler result in the body: byte slices are kept raw,
// everything else is coerced to text.
func (r *Response) SetBody(v any) {
	switch x := v.(type) {
	case nil:
		r.SetText("")
	case []byte:
		r.SetBytes(x)
	case string:
		r.SetText(x)
	case fmt.Stringer:
		r.SetText(x.String())
	default:
		r.SetText(fmt.Sprint(x))
	}
}

// IsBinary reports whether the body holds raw bytes.
func (r *Response) IsBinary() bool {
	return r.binary
}

// Text returns the text body. For binary bodies it returns the bytes as a string.
func (r *Response) Text() string {
	if r.binary {
		return string(r.bytes)
	}
	return r.text
}

// Body returns the body as bytes regardless of how it was set.
func (r *Response) Body() []byte {
	if r.binary {
		return r.bytes
	}
	return []byte(r.text)
}

// SetHeader sets a response header, replacing any previous value.
func (r *Response) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(map[string]string)
	}
	r.Header[http.CanonicalHeaderKey(key)] = value
}

// SetCookie appends a Set-Cookie directive. Attributes may be given with the
// typed cookie options or by loose key via cookie.WithAttr("max_age", 60).
func (r *Response) SetCookie(name, value string, opts ...cookie.Option) {
	r.cookies = append(r.cookies, cookie.New(name, value, opts...))
}

// DeleteCookie appends a directive that expires the named cookie on the client.
func (r *Response) DeleteCookie(name string, opts ...cookie.Option) {
	opts = append(opts, cookie.WithMaxAge(-1))
	r.cookies = append(r.cookies, cookie.New(name, "", opts...))
}

// Cookies returns the pending cookie directives in the order they were set.
func (r *Response) Cookies() []cookie.Cookie {
	return r.cookies
}

// Cookie returns the last pending directive with the given name.
func (r *Response) Cookie(name string) (cookie.Cookie, bool) {
	for i := len(r.cookies) - 1; i >= 0; i-- {
		if r.cookies[i].Name == name {
			return r.cookies[i], true
		}
	}
	return cookie.Cookie{}, false
}

// Clone returns a copy that shares no mutable state with r.
func (r *Response) Clone() *Response {
	c := *r
	c.Header = maps.Clone(r.Header)
	if c.Header == nil {
		c.Header = make(map[string]string)
	}
	c.cookies = append([]cookie.Cookie(nil), r.cookies...)
	return &c
}
