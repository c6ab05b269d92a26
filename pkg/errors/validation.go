package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateDirectory checks that path names an existing directory.
// role ("fronts", "backs") is used in the message so the user knows which
// flag to fix.
func ValidateDirectory(path, role string) error {
	if path == "" {
		return New(ErrCodeDirectoryNotFound, "%s directory not set", role)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeDirectoryNotFound, "%s directory not found: %s", role, path)
		}
		return Wrap(ErrCodeDirectoryNotFound, err, "%s directory not accessible: %s", role, path)
	}
	if !info.IsDir() {
		return New(ErrCodeDirectoryNotFound, "%s path is not a directory: %s", role, path)
	}
	return nil
}

// ValidateInputFile checks that path names an existing regular file.
func ValidateInputFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "input file not set")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeFileNotFound, "input file not found: %s", path)
		}
		return Wrap(ErrCodeFileNotFound, err, "input file not accessible: %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidInput, "input path is a directory: %s", path)
	}
	return nil
}

// ValidateOutputPath validates an output file path before any work is done.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path must not name an existing directory
//   - Parent directory must exist
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return New(ErrCodeInvalidInput, "output path names a directory: %s", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodeInvalidInput, "output path names a directory: %s", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return New(ErrCodeInvalidInput, "output directory does not exist: %s", dir)
	}
	return nil
}
