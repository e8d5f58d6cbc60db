package static

import "errors"

var (
	// ErrOutsideRoot is returned when a resolved path leaves the static root.
	ErrOutsideRoot = errors.New("path outside static root")
	// ErrReadFile is returned when an existing file cannot be read.
	ErrReadFile = errors.New("failed to read static file")
)
