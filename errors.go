package md2gb

import (
	"errors"

	"github.com/alnah/go-md2gb/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

	// Configuration errors.
	ErrInvalidRule       = pipeline.ErrInvalidRule
	ErrInvalidWindowSize = pipeline.ErrInvalidWindowSize
	ErrInvalidPhrase     = pipeline.ErrInvalidPhrase

	// Verification errors.
	ErrProtectedContentChanged = pipeline.ErrProtectedContentChanged
)
