package request

import (
	"errors"
	"net/http"
)

var (
	// ErrBodyTooLarge is returned when the declared content length exceeds the configured limit.
	ErrBodyTooLarge = bodyTooLargeError{}

	// ErrReadBody is returned when the transport fails while the body is being read.
	ErrReadBody = errors.New("failed to read request body")
)

type bodyTooLargeError struct{}

func (bodyTooLargeError) Error() string   { return "request body too large" }
func (bodyTooLargeError) StatusCode() int { return http.StatusRequestEntityTooLarge }
