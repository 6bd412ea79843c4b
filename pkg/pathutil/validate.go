// Package pathutil validates the config, payload and output paths handed to
// the CLI.
package pathutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxPayloadBytes bounds a backend payload read from disk.
const MaxPayloadBytes = 64 << 20

// ValidatePath cleans path and resolves symlinks when it exists. Paths that
// do not exist yet are returned cleaned so output files can be created.
func ValidatePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if strings.Contains(path, "\x00") {
		return "", ErrNullBytes
	}

	cleaned := filepath.Clean(path)
	realPath, err := filepath.EvalSymlinks(cleaned)
	if err != nil {
		return cleaned, nil
	}
	return realPath, nil
}

// IsPathSafe reports whether path is non-empty, has no null bytes and does
// not climb above the working directory.
func IsPathSafe(path string) bool {
	if path == "" || strings.Contains(path, "\x00") {
		return false
	}

	cleaned := filepath.Clean(path)
	return cleaned != ".." && !strings.HasPrefix(cleaned, ".."+string(filepath.Separator))
}

// ReadPayload reads a backend payload file of at most limit bytes. A limit
// of zero or less means MaxPayloadBytes.
func ReadPayload(path string, limit int64) ([]byte, error) {
	cleanPath, err := ValidatePath(path)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = MaxPayloadBytes
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", cleanPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, cleanPath)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, cleanPath, info.Size())
	}

	f, err := os.Open(cleanPath) // #nosec G304 - path is validated above
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cleanPath, err)
	}
	defer f.Close()

	return ReadLimited(f, limit)
}

// ReadLimited reads r to the end, failing with ErrTooLarge past limit bytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxPayloadBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
