package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// validatePathSecurity rejects a joined path that climbs out of root.
func validatePathSecurity(root, requestPath string) error {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(requestPath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, requestPath)
	}
	return nil
}

// requireFile fails unless path names an existing regular file.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", errNotRegular, path)
	}
	return nil
}

// isNoMatch reports whether an open error means the file is simply not
// servable: missing, not a directory on the way, or escaping the root.
func isNoMatch(err error) bool {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return true
	}
	// os.Root reports symlinks leaving the root without an exported sentinel.
	var pe *fs.PathError
	return errors.As(err, &pe) && strings.Contains(pe.Err.Error(), "escapes")
}
