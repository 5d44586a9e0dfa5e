package maplabel

import (
	"errors"

	"github.com/tdewolff/maplabel/text"
)

var (
	// ErrZeroTextSize is raised when shaping with a zero layout text size.
	ErrZeroTextSize = text.ErrZeroTextSize

	// ErrZeroScale is raised when a section has a zero scale.
	ErrZeroScale = errors.New("maplabel: section scale must be non-zero")

	// ErrNoTextFit is raised when fitting an icon to text without a fit mode.
	ErrNoTextFit = errors.New("maplabel: icon-text-fit must not be none")

	// ErrJustify is raised when requesting the shaping of an unresolved justification.
	ErrJustify = errors.New("maplabel: justification must be left, center, or right")

	// ErrSegment is raised when an anchor refers to a segment beyond its line.
	ErrSegment = errors.New("maplabel: anchor segment out of range")
)
