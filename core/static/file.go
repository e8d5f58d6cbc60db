package static

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// File creates a route handler that serves a single file, such as
// /favicon.ico, with the given content type. The file is re-read on each
// request. Panics at startup if the file doesn't exist or is a directory.
func File(filePath, contentType string) handler.HandlerFunc {
	cleanPath := filepath.Clean(filePath)
	if err := requireFile(cleanPath); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(*request.Request, handler.Params) (any, error) {
		body, err := os.ReadFile(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, cleanPath, err)
		}
		return response.Bytes(body, contentType), nil
	}
}
