package dto

import (
	"time"

	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// NoteResponse represents a note in API responses. The content fields come
// from the decrypted payload; ciphertext is never exposed.
type NoteResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Tags            []string  `json:"tags"`
	Pinned          bool      `json:"pinned"`
	AttachmentCount int       `json:"attachment_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MapNoteToResponse converts a note row and its decrypted payload to an API response.
func MapNoteToResponse(note *notesDomain.Note, payload *notesDomain.NotePayload) NoteResponse {
	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteResponse{
		ID:              note.ID.String(),
		Title:           payload.Title,
		Body:            payload.Body,
		Tags:            tags,
		Pinned:          payload.Pinned,
		AttachmentCount: note.AttachmentCount,
		CreatedAt:       payload.CreatedAt,
		UpdatedAt:       payload.UpdatedAt,
	}
}
