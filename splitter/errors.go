package splitter

import "errors"

// Sentinel errors for splitting.
var (
	// ErrMissingFileName is returned for a marker line with no file name.
	ErrMissingFileName = errors.New("missing file name")

	// ErrDuplicateFileName is returned when a file name repeats within one
	// text. Names are compared case-insensitively.
	ErrDuplicateFileName = errors.New("duplicate file name")
)
