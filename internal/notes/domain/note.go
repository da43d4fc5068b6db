// Package domain defines the core domain models for the note vault.
// Note content is never persisted in plaintext: a Note row carries only the
// framed ciphertext of its payload plus a plaintext tag index used for
// browsing without decryption.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotePayload is the decrypted content of a note. It exists in memory only
// and is always fully reconstructible from the stored ciphertext plus the
// note's content key.
type NotePayload struct {
	// Title is the note title.
	Title string
	// Body is the structured rich text body (markdown source).
	Body string
	// Tags is the note's tag set. Kept sorted and deduplicated so the
	// serialized payload is byte-identical for logically identical notes.
	Tags []string
	// CreatedAt is the UTC timestamp when the note was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last payload mutation.
	UpdatedAt time.Time
	// Pinned marks the note as pinned in listings.
	Pinned bool
}

// Normalize canonicalizes the payload in place: tags are trimmed, sorted and
// deduplicated, timestamps are converted to UTC. Must be called before
// sealing so that equal payloads serialize to equal bytes.
func (p *NotePayload) Normalize() {
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	slices.Sort(tags)
	p.Tags = slices.Compact(tags)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
}

// Equal reports whether two payloads are logically identical.
func (p *NotePayload) Equal(other *NotePayload) bool {
	if other == nil {
		return false
	}
	return p.Title == other.Title &&
		p.Body == other.Body &&
		slices.Equal(p.Tags, other.Tags) &&
		p.CreatedAt.Equal(other.CreatedAt) &&
		p.UpdatedAt.Equal(other.UpdatedAt) &&
		p.Pinned == other.Pinned
}

// Note is the persisted form of a note: a stable identifier, the framed
// ciphertext of its payload, and bookkeeping columns. The plaintext tag index
// (note_tags rows) must always equal the payload's tag set; both are written
// in the same transaction.
type Note struct {
	// ID is the stable note identifier (UUIDv7).
	ID uuid.UUID
	// EncryptedData is the framed ciphertext of the NotePayload
	// (nonce || ciphertext || tag).
	EncryptedData []byte
	// AttachmentCount tracks the number of attachments owned by this note.
	// Updated transactionally to avoid lost updates under concurrency.
	AttachmentCount int
	// CreatedAt is the UTC timestamp when the note row was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last row update.
	UpdatedAt time.Time
}
