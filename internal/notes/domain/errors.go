// Package domain defines core domain models and errors for notes.
package domain

import (
	"github.com/jamesandrewmyers/memento/internal/errors"
)

// Note-specific error definitions.
var (
	// ErrNoteNotFound indicates no note exists with the requested identifier.
	ErrNoteNotFound = errors.Wrap(errors.ErrNotFound, "note not found")

	// ErrTagIndexDivergence indicates the plaintext tag index does not match
	// the encrypted payload's tag set. This is a consistency defect.
	ErrTagIndexDivergence = errors.Wrap(errors.ErrIntegrity, "tag index diverged from payload tags")
)
