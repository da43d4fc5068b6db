package domain

import (
	"bytes"
	"encoding/json"
	"time"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// BundleVersion is the current bundle format version.
const BundleVersion = 1

// BundleAttachment carries one decrypted attachment inside a bundle. Data is
// base64 on the wire (encoding/json's []byte default) and round-trips the
// original attachment bytes exactly.
type BundleAttachment struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// bundleWire is the JSON shape of a bundle.
type bundleWire struct {
	Version     int                `json:"version"`
	Payload     bundlePayload      `json:"payload"`
	Attachments []BundleAttachment `json:"attachments"`
}

type bundlePayload struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Pinned    bool     `json:"pinned"`
}

// Bundle is the self-describing plaintext that export.enc seals: the note's
// payload plus every attachment's original bytes.
type Bundle struct {
	Payload     *notesDomain.NotePayload
	Attachments []BundleAttachment
}

// Encode serializes the bundle. The note body and every attachment's bytes
// are recoverable exactly from the output.
func (b *Bundle) Encode() ([]byte, error) {
	payload := *b.Payload
	payload.Normalize()

	wire := bundleWire{
		Version: BundleVersion,
		Payload: bundlePayload{
			Title:     payload.Title,
			Body:      payload.Body,
			Tags:      payload.Tags,
			CreatedAt: payload.CreatedAt.Format(time.RFC3339Nano),
			UpdatedAt: payload.UpdatedAt.Format(time.RFC3339Nano),
			Pinned:    payload.Pinned,
		},
		Attachments: b.Attachments,
	}
	if wire.Payload.Tags == nil {
		wire.Payload.Tags = []string{}
	}
	if wire.Attachments == nil {
		wire.Attachments = []BundleAttachment{}
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, cryptoDomain.ErrEncryptionFailed
	}
	return data, nil
}

// DecodeBundle parses an opened bundle. Returns ErrDeserialization if the
// bytes do not match the bundle shape.
func DecodeBundle(data []byte) (*Bundle, error) {
	var wire bundleWire
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wire); err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}
	if wire.Version != BundleVersion {
		return nil, cryptoDomain.ErrDeserialization
	}

	createdAt, err := time.Parse(time.RFC3339Nano, wire.Payload.CreatedAt)
	if err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, wire.Payload.UpdatedAt)
	if err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}

	return &Bundle{
		Payload: &notesDomain.NotePayload{
			Title:     wire.Payload.Title,
			Body:      wire.Payload.Body,
			Tags:      wire.Payload.Tags,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			Pinned:    wire.Payload.Pinned,
		},
		Attachments: wire.Attachments,
	}, nil
}
