package domain

// Algorithm represents the AEAD algorithm used for at-rest encryption.
//
// Both supported algorithms provide authenticated encryption: confidentiality
// plus tamper detection. They share the same frame geometry (96-bit nonce,
// 128-bit tag), so framed blobs are interchangeable at the storage layer.
//
// Algorithm selection guidelines:
//   - Use AESGCM on CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on devices without AES-NI
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeyWrapScheme identifies the asymmetric scheme used to wrap ephemeral
// export keys for a recipient.
type KeyWrapScheme string

const (
	// RSAOAEPSHA256 wraps a symmetric key with RSA-OAEP using SHA-256 padding.
	RSAOAEPSHA256 KeyWrapScheme = "RSA-OAEP-SHA256"
)

// Manifest cipher names as they appear in export archives. These are wire
// identifiers, distinct from the internal Algorithm values.
const (
	// CipherNameAESGCM is the manifest identifier for AES-256-GCM.
	CipherNameAESGCM = "AES-256-GCM"
)

// Frame geometry shared by all supported AEAD algorithms.
const (
	// KeySize is the symmetric key size in bytes (256 bits).
	KeySize = 32

	// NonceSize is the AEAD nonce size in bytes (96 bits).
	NonceSize = 12

	// TagSize is the authentication tag size in bytes (128 bits).
	TagSize = 16

	// IdentityKeyBits is the RSA modulus size for the export identity.
	IdentityKeyBits = 2048
)
