package response

import (
	"errors"
	"net/http"
)

// ErrInvalidResponse is returned by Write when the response cannot be
// serialized. Nothing has been written to the client in that case.
var ErrInvalidResponse = errors.New("invalid response")

// HTTPError is an error carrying the HTTP status it should be reported with.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	cause   error
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// Unwrap exposes the cause attached with WithError.
func (e HTTPError) Unwrap() error {
	return e.cause
}

// Is matches another HTTPError with the same status and code, so wrapped
// copies still satisfy errors.Is against the predefined values.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Status == e.Status && t.Code == e.Code
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	e.cause = err
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest            = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrForbidden             = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound              = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrRequestEntityTooLarge = newHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrTooManyRequests       = newHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError   = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable    = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusRequestEntityTooLarge: ErrRequestEntityTooLarge,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError.
// It checks for HTTPError first, then the statusCode interface, and defaults to 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
		if base.Message == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// Error builds a plain-text response for err. Only the status text is sent
// to the client; the cause stays server-side.
func Error(err error) *Response {
	httpErr := AsHTTPError(err)
	r := TextWithStatus(httpErr.Message, httpErr.Status)
	r.Header["Content-Type"] = "text/plain; charset=utf-8"
	return r
}
