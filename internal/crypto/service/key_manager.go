package service

import (
	"context"
	"crypto/rsa"
	"sync"

	"github.com/google/uuid"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// Key store identifiers. Content keys are namespaced by note ID so one
// stable key exists per note for its lifetime.
const (
	identityKeyID    = "export-identity"
	contentKeyPrefix = "content-key:"
)

// KeyManagerService implements the KeyManager interface. It is the sole
// authority for key material in the vault:
//
//   - The asymmetric export identity (RSA-2048), loaded from the key store
//     or generated exactly once on first access and then cached for the
//     process lifetime. Concurrent first calls observe a single identity.
//   - Per-note symmetric content keys (256-bit), created on first access and
//     persisted through the KeyStore capability so they are stable across
//     restarts.
//
// Determinism for tests comes from injecting a FixedKeyProvider, not from a
// process-wide mode switch.
type KeyManagerService struct {
	store    KeyStore
	provider KeyProvider

	identityOnce sync.Once
	identity     *rsa.PrivateKey
	identityErr  error

	// contentMu serializes first-access creation so two concurrent callers
	// never persist two different keys for one note.
	contentMu sync.Mutex
}

// NewKeyManager creates a KeyManagerService backed by the given key store
// and key provider.
func NewKeyManager(store KeyStore, provider KeyProvider) *KeyManagerService {
	return &KeyManagerService{
		store:    store,
		provider: provider,
	}
}

// ExportPrivateKey returns the identity private key, loading it from the key
// store or generating and persisting it on first access. A generation
// failure is cached and surfaced on every subsequent call; the identity is
// never silently regenerated.
func (km *KeyManagerService) ExportPrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	km.identityOnce.Do(func() {
		km.identity, km.identityErr = km.loadOrCreateIdentity(ctx)
	})
	return km.identity, km.identityErr
}

// ExportPublicKey returns the public half of the export identity.
func (km *KeyManagerService) ExportPublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	priv, err := km.ExportPrivateKey(ctx)
	if err != nil {
		return nil, err
	}
	return &priv.PublicKey, nil
}

// ExportPublicKeyData returns a PEM serialization of the public key for
// transmission to a recipient.
func (km *KeyManagerService) ExportPublicKeyData(ctx context.Context) ([]byte, error) {
	pub, err := km.ExportPublicKey(ctx)
	if err != nil {
		return nil, err
	}
	return MarshalPublicKey(pub)
}

// ContentKey returns the note's symmetric content key, creating and
// persisting one on first access.
func (km *KeyManagerService) ContentKey(ctx context.Context, noteID uuid.UUID) ([]byte, error) {
	keyID := contentKeyPrefix + noteID.String()

	key, err := km.store.Get(ctx, keyID)
	if err == nil {
		return key, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	km.contentMu.Lock()
	defer km.contentMu.Unlock()

	// Re-check under the lock; a concurrent caller may have created the key.
	key, err = km.store.Get(ctx, keyID)
	if err == nil {
		return key, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	key, err = km.provider.ContentKey()
	if err != nil {
		return nil, err
	}
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	if err := km.store.Put(ctx, keyID, key); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist content key")
	}
	return key, nil
}

// loadOrCreateIdentity loads a persisted identity or generates a fresh one.
func (km *KeyManagerService) loadOrCreateIdentity(ctx context.Context) (*rsa.PrivateKey, error) {
	stored, err := km.store.Get(ctx, identityKeyID)
	if err == nil {
		priv, parseErr := ParsePrivateKey(stored)
		if parseErr != nil {
			return nil, apperrors.Wrap(cryptoDomain.ErrKeyGeneration, parseErr.Error())
		}
		return priv, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyGeneration, err.Error())
	}

	priv, err := km.provider.Identity()
	if err != nil {
		return nil, err
	}

	if err := km.store.Put(ctx, identityKeyID, MarshalPrivateKey(priv)); err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyGeneration, err.Error())
	}
	return priv, nil
}
