// Package service provides the cryptographic services of the vault: AEAD
// ciphers, framed payload sealing, key lifecycle management and asymmetric
// key wrapping for exports.
package service

import (
	"context"
	"crypto/rsa"

	"github.com/google/uuid"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Envelope defines the stateless serialize+seal / open+deserialize primitives
// over framed blobs (nonce || ciphertext || tag).
type Envelope interface {
	// SealPayload deterministically serializes the payload and seals it,
	// returning a framed blob.
	SealPayload(payload *notesDomain.NotePayload, key []byte) ([]byte, error)

	// OpenPayload opens a framed blob and deserializes the recovered bytes
	// into a NotePayload.
	OpenPayload(blob, key []byte) (*notesDomain.NotePayload, error)

	// Seal seals raw bytes, returning a framed blob.
	Seal(plaintext, key []byte) ([]byte, error)

	// Open opens a framed blob, returning the raw plaintext.
	Open(blob, key []byte) ([]byte, error)
}

// KeyManager is the sole authority for all key material: the device's
// asymmetric export identity and the per-note symmetric content keys.
type KeyManager interface {
	// ExportPrivateKey returns the cached identity private key, generating
	// and persisting it exactly once on first access.
	ExportPrivateKey(ctx context.Context) (*rsa.PrivateKey, error)

	// ExportPublicKey returns the public half of the export identity.
	ExportPublicKey(ctx context.Context) (*rsa.PublicKey, error)

	// ExportPublicKeyData returns a PEM serialization of the public key
	// suitable for transmission to a recipient.
	ExportPublicKeyData(ctx context.Context) ([]byte, error)

	// ContentKey returns the note's symmetric content key, creating and
	// persisting one on first access. The key is stable for the note's
	// lifetime and across restarts.
	ContentKey(ctx context.Context, noteID uuid.UUID) ([]byte, error)
}

// KeyStore is the secure key persistence capability consumed by KeyManager.
// Implementations seal key bytes before they touch disk.
type KeyStore interface {
	// Put stores key bytes under keyID, overwriting any existing entry.
	Put(ctx context.Context, keyID string, key []byte) error

	// Get returns the key bytes stored under keyID, or ErrNotFound.
	Get(ctx context.Context, keyID string) ([]byte, error)
}

// KeyWrapper performs asymmetric key wrapping for export archives.
type KeyWrapper interface {
	// Wrap encrypts a symmetric key under the recipient's public key.
	Wrap(key []byte, recipient *rsa.PublicKey) ([]byte, error)

	// Unwrap recovers a symmetric key with the matching private key.
	Unwrap(wrapped []byte, identity *rsa.PrivateKey) ([]byte, error)

	// ParsePublicKey parses a PEM-encoded RSA public key.
	ParsePublicKey(data []byte) (*rsa.PublicKey, error)
}

// KeyProvider generates fresh key material. The production provider draws
// from crypto/rand; tests inject a deterministic provider instead of
// flipping a process-wide test mode.
type KeyProvider interface {
	// ContentKey returns a fresh 32-byte symmetric key.
	ContentKey() ([]byte, error)

	// Identity returns a fresh RSA identity keypair.
	Identity() (*rsa.PrivateKey, error)
}
