// Package domain defines the attachment domain model. Attachment content is
// sealed under the owning note's content key; no attachment ever has key
// material of its own.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/errors"
)

// Attachment is the persisted form of a binary attachment.
type Attachment struct {
	// ID is the stable attachment identifier (UUIDv7).
	ID uuid.UUID
	// NoteID is the owning note. Attachments never outlive their note.
	NoteID uuid.UUID
	// ContentType is the declared MIME type of the original content.
	ContentType string
	// EncryptedData is the framed ciphertext of the attachment bytes
	// (nonce || ciphertext || tag), sealed under the note's content key.
	EncryptedData []byte
	// CreatedAt is the UTC timestamp when the attachment was stored.
	CreatedAt time.Time
}

// Attachment-specific error definitions.
var (
	// ErrAttachmentNotFound indicates no attachment exists with the requested
	// identifier.
	ErrAttachmentNotFound = errors.Wrap(errors.ErrNotFound, "attachment not found")
)
