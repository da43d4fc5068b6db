package service

import (
	"bytes"
	"encoding/json"
	"time"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// EnvelopeService implements the Envelope interface: stateless
// serialize+seal and open+deserialize over framed blobs.
//
// Frame layout: nonce (12 bytes) || ciphertext || authentication tag (16
// bytes). The tag is produced by the AEAD seal and rides at the end of the
// ciphertext section, so the frame is simply nonce followed by the sealed
// output. Every sealing operation draws a fresh random nonce; a key never
// reuses a nonce across calls.
type EnvelopeService struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewEnvelope creates an EnvelopeService sealing with the given algorithm.
// Export archives always use AESGCM; the at-rest algorithm is configurable.
func NewEnvelope(aeadManager AEADManager, algorithm cryptoDomain.Algorithm) *EnvelopeService {
	return &EnvelopeService{
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}

// payloadWire is the deterministic serialization of a NotePayload: fixed
// field order, sorted tags, RFC3339Nano UTC timestamps. Logically identical
// payloads serialize to byte-identical output.
type payloadWire struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Pinned    bool     `json:"pinned"`
}

// marshalPayload produces the canonical serialization of a payload. The
// payload is normalized first, so logically identical payloads always yield
// byte-identical output.
func marshalPayload(payload *notesDomain.NotePayload) ([]byte, error) {
	payload.Normalize()

	wire := payloadWire{
		Title:     payload.Title,
		Body:      payload.Body,
		Tags:      payload.Tags,
		CreatedAt: payload.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: payload.UpdatedAt.Format(time.RFC3339Nano),
		Pinned:    payload.Pinned,
	}
	if wire.Tags == nil {
		wire.Tags = []string{}
	}

	return json.Marshal(wire)
}

// SealPayload deterministically serializes the payload and seals it under
// the key, returning a framed blob.
func (e *EnvelopeService) SealPayload(
	payload *notesDomain.NotePayload,
	key []byte,
) ([]byte, error) {
	plaintext, err := marshalPayload(payload)
	if err != nil {
		return nil, cryptoDomain.ErrEncryptionFailed
	}

	return e.Seal(plaintext, key)
}

// OpenPayload opens a framed blob and deserializes the recovered bytes into
// a NotePayload. Returns ErrAuthenticationFailed on tag mismatch and
// ErrDeserialization if the recovered bytes do not match the payload shape.
func (e *EnvelopeService) OpenPayload(blob, key []byte) (*notesDomain.NotePayload, error) {
	plaintext, err := e.Open(blob, key)
	if err != nil {
		return nil, err
	}

	var wire payloadWire
	decoder := json.NewDecoder(bytes.NewReader(plaintext))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wire); err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}

	createdAt, err := time.Parse(time.RFC3339Nano, wire.CreatedAt)
	if err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, wire.UpdatedAt)
	if err != nil {
		return nil, cryptoDomain.ErrDeserialization
	}

	return &notesDomain.NotePayload{
		Title:     wire.Title,
		Body:      wire.Body,
		Tags:      wire.Tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Pinned:    wire.Pinned,
	}, nil
}

// Seal seals raw bytes under the key, returning nonce || ciphertext || tag.
func (e *EnvelopeService) Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := e.aeadManager.CreateCipher(key, e.algorithm)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrEncryptionFailed
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Open splits the frame and performs an authenticated open. Returns
// ErrAuthenticationFailed on tag mismatch or a malformed frame; no partial
// plaintext is ever returned.
func (e *EnvelopeService) Open(blob, key []byte) ([]byte, error) {
	if len(blob) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	aead, err := e.aeadManager.CreateCipher(key, e.algorithm)
	if err != nil {
		return nil, err
	}

	nonce := blob[:cryptoDomain.NonceSize]
	ciphertext := blob[cryptoDomain.NonceSize:]

	plaintext, err := aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// FrameNonce returns the 12-byte nonce section of a framed blob.
func FrameNonce(blob []byte) []byte {
	if len(blob) < cryptoDomain.NonceSize {
		return nil
	}
	return blob[:cryptoDomain.NonceSize]
}

// FrameTag returns the 16-byte authentication tag section of a framed blob.
func FrameTag(blob []byte) []byte {
	if len(blob) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return nil
	}
	return blob[len(blob)-cryptoDomain.TagSize:]
}
