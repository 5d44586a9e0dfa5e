package text

import "errors"

var (
	// ErrSectionIndex is raised when a code point refers to a section that does not exist.
	ErrSectionIndex = errors.New("text: section index out of range")

	// ErrZeroTextSize is raised when advances of images are requested for a zero layout text size.
	ErrZeroTextSize = errors.New("text: layout text size must be non-zero")
)
