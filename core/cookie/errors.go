package cookie

import (
	"errors"
	"fmt"
)

// ErrInvalidCookie is returned for a directive whose name or value cannot be
// written to a Set-Cookie header.
var ErrInvalidCookie = errors.New("invalid cookie")

// ErrCookieTooLarge is returned when the serialized directive exceeds
// MaxCookieSize.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
