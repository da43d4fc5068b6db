package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named label shared across notes. Tag names are unique; the
// note_tags join rows form the plaintext secondary index over encrypted
// payload tags.
type Tag struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
