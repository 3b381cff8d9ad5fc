package fileutil

import (
	"fmt"
	"os"
)

// EnsureDir creates dir and any missing parents with the given permissions.
func EnsureDir(dir string, perm os.FileMode) error {
	if dir == "" {
		return ErrEmptyPath
	}
	return os.MkdirAll(dir, perm)
}

// CopyFile copies src to dst with the given permissions. The copy is
// written atomically, so dst is either the old content or the new,
// never a partial file.
func CopyFile(src, dst string, perm os.FileMode) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	data, err := os.ReadFile(src) //nolint:gosec // G304: paths are validated by caller, not from user input
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	return WriteAtomic(dst, data, perm)
}
