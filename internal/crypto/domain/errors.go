package domain

import (
	"github.com/jamesandrewmyers/memento/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. Crypto failures never fall
// back to plaintext output and keys are never silently regenerated.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// All symmetric keys (content keys and ephemeral export keys) must be
	// exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyGeneration indicates identity or content key generation failed.
	// Fatal to any export; always surfaced to the caller.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyWrap indicates the recipient public key is malformed or the
	// asymmetric wrap operation failed. The export is aborted and no archive
	// members are written.
	ErrKeyWrap = errors.Wrap(errors.ErrInvalidInput, "key wrap failed")

	// ErrAuthenticationFailed indicates tag verification failed during an
	// authenticated open: the blob was tampered with or the wrong key was
	// used. No partial plaintext is ever released and the operation is never
	// retried automatically.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrIntegrity, "authentication failed")

	// ErrDeserialization indicates an authenticated open succeeded but the
	// recovered bytes do not match the expected payload shape. Treated as
	// stored-data corruption.
	ErrDeserialization = errors.Wrap(errors.ErrIntegrity, "payload deserialization failed")

	// ErrDecryptionFailed indicates a locally stored blob could not be
	// decrypted (corrupted store or lost key material).
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")

	// ErrEncryptionFailed indicates a sealing operation failed.
	ErrEncryptionFailed = errors.New("encryption failed")
)
