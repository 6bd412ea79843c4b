package pathutil

import "errors"

// Sentinel errors for path validation.
var (
	// ErrEmptyPath is returned when an empty path is provided.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrNullBytes is returned when a path contains null bytes.
	ErrNullBytes = errors.New("path contains null bytes")

	// ErrNotRegular is returned when a payload path is a directory or device.
	ErrNotRegular = errors.New("not a regular file")

	// ErrTooLarge is returned when a payload exceeds the read limit.
	ErrTooLarge = errors.New("file exceeds size limit")
)
