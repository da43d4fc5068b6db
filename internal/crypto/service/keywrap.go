package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// RSAKeyWrapService implements the KeyWrapper interface using RSA-OAEP with
// SHA-256 padding. A 32-byte ephemeral export key wrapped under a 2048-bit
// recipient key produces a 256-byte wrapped-key artifact.
type RSAKeyWrapService struct{}

// NewRSAKeyWrap creates a new RSAKeyWrapService.
func NewRSAKeyWrap() *RSAKeyWrapService {
	return &RSAKeyWrapService{}
}

// Wrap encrypts a symmetric key under the recipient's public key using
// RSA-OAEP-SHA256. Returns ErrKeyWrap if the wrap operation fails.
func (s *RSAKeyWrapService) Wrap(key []byte, recipient *rsa.PublicKey) ([]byte, error) {
	if recipient == nil {
		return nil, cryptoDomain.ErrKeyWrap
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, recipient, key, nil)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyWrap, err.Error())
	}
	return wrapped, nil
}

// Unwrap recovers a symmetric key with the matching private key.
func (s *RSAKeyWrapService) Unwrap(wrapped []byte, identity *rsa.PrivateKey) ([]byte, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, identity, wrapped, nil)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyWrap, err.Error())
	}
	return key, nil
}

// ParsePublicKey parses a PEM-encoded RSA public key (PKIX "PUBLIC KEY"
// block). Returns ErrKeyWrap if the data is malformed or not RSA.
func (s *RSAKeyWrapService) ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyWrap, "failed to decode PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyWrap, err.Error())
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyWrap, "not an RSA public key")
	}
	return rsaPub, nil
}

// MarshalPublicKey serializes an RSA public key as a PKIX PEM block.
func MarshalPublicKey(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	}), nil
}

// MarshalPrivateKey serializes an RSA private key as a PKCS1 PEM block for
// storage in the key store.
func MarshalPrivateKey(priv *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
}

// ParsePrivateKey parses a PKCS1 PEM-encoded RSA private key.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}
