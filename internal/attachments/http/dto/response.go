package dto

import (
	"encoding/base64"
	"time"

	attachmentsDomain "github.com/jamesandrewmyers/memento/internal/attachments/domain"
)

// AttachmentResponse represents attachment metadata in API responses.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"note_id"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttachmentContentResponse represents a decrypted attachment in API
// responses. Data carries the file content encoded as standard base64.
type AttachmentContentResponse struct {
	AttachmentResponse
	Data string `json:"data"`
}

// MapAttachmentToResponse converts a domain attachment to an API response.
func MapAttachmentToResponse(attachment *attachmentsDomain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          attachment.ID.String(),
		NoteID:      attachment.NoteID.String(),
		ContentType: attachment.ContentType,
		CreatedAt:   attachment.CreatedAt,
	}
}

// MapAttachmentToContentResponse converts a domain attachment plus its
// decrypted content to an API response.
func MapAttachmentToContentResponse(
	attachment *attachmentsDomain.Attachment,
	content []byte,
) AttachmentContentResponse {
	return AttachmentContentResponse{
		AttachmentResponse: MapAttachmentToResponse(attachment),
		Data:               base64.StdEncoding.EncodeToString(content),
	}
}

// ListAttachmentsResponse represents a list of attachment metadata in API responses.
type ListAttachmentsResponse struct {
	Data []AttachmentResponse `json:"data"`
}

// MapAttachmentsToListResponse converts a slice of domain attachments to a list API response.
func MapAttachmentsToListResponse(attachments []*attachmentsDomain.Attachment) ListAttachmentsResponse {
	responses := make([]AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, MapAttachmentToResponse(attachment))
	}
	return ListAttachmentsResponse{
		Data: responses,
	}
}
