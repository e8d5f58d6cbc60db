package request

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/skiff/core/session"
)

// Request is the parsed view of an inbound request handed to middleware and
// handlers. Fields are set once by Build; only Session is bound later by the
// dispatcher.
type Request struct {
	Method     string
	// Path is the request path still percent-encoded.
	Path       string
	RawQuery   string
	Host       string
	RemoteAddr string

	Query   Values
	Header  http.Header
	Cookies map[string]string

	// Body is nil unless the method is POST.
	Body []byte
	// Form is populated only when Body is form-encoded.
	Form Values

	// Session is a live reference to the stored session.
	Session *session.Session

	ctx    context.Context
	values map[any]any
}

// Context returns the transport context of the request.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Cookie returns the value of the named request cookie.
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.Cookies[name]
	return v, ok
}

// SetValue stores a request-scoped value.
func (r *Request) SetValue(key, val any) {
	if r.values == nil {
		r.values = make(map[any]any)
	}
	r.values[key] = val
}

// Value returns a request-scoped value, falling back to the transport context.
func (r *Request) Value(key any) any {
	if v, ok := r.values[key]; ok {
		return v
	}
	return r.Context().Value(key)
}

type requestIDKey struct{}

// SetRequestID records the request correlation id.
func (r *Request) SetRequestID(id string) {
	r.SetValue(requestIDKey{}, id)
}

// RequestID returns the correlation id set by SetRequestID, if any.
func (r *Request) RequestID() string {
	id, _ := r.Value(requestIDKey{}).(string)
	return id
}
