package service

import (
	"context"
	"fmt"
	"sync"

	"gocloud.dev/secrets"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"

	// Register keeper provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyRepository persists sealed key bytes. The sqlite implementation lives in
// internal/crypto/repository.
type KeyRepository interface {
	// Put stores sealed key bytes under keyID, replacing any existing row.
	Put(ctx context.Context, keyID string, sealed []byte) error

	// Get returns the sealed key bytes for keyID, or ErrNotFound.
	Get(ctx context.Context, keyID string) ([]byte, error)
}

// OpenKeeper opens a secrets.Keeper for the configured keeper URI.
// Supports: base64key://, gcpkms://, awskms://, azurekeyvault://, hashivault://.
func OpenKeeper(ctx context.Context, keeperURI string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open keeper: %w", err)
	}
	return keeper, nil
}

// KeeperKeyStore implements the KeyStore capability over a KeyRepository,
// sealing key bytes under a secrets.Keeper before they touch disk. A nil
// keeper stores key bytes unsealed; only intended for throwaway vaults.
type KeeperKeyStore struct {
	repo   KeyRepository
	keeper *secrets.Keeper
}

// NewKeeperKeyStore creates a KeyStore backed by the given repository and keeper.
func NewKeeperKeyStore(repo KeyRepository, keeper *secrets.Keeper) *KeeperKeyStore {
	return &KeeperKeyStore{
		repo:   repo,
		keeper: keeper,
	}
}

// Put seals the key bytes under the keeper and persists them.
func (s *KeeperKeyStore) Put(ctx context.Context, keyID string, key []byte) error {
	sealed := key
	if s.keeper != nil {
		var err error
		sealed, err = s.keeper.Encrypt(ctx, key)
		if err != nil {
			return apperrors.Wrap(err, "failed to seal key")
		}
	}
	return s.repo.Put(ctx, keyID, sealed)
}

// Get loads the sealed key bytes and opens them under the keeper.
// Returns ErrNotFound if no key is stored under keyID.
func (s *KeeperKeyStore) Get(ctx context.Context, keyID string) ([]byte, error) {
	sealed, err := s.repo.Get(ctx, keyID)
	if err != nil {
		return nil, err
	}

	if s.keeper == nil {
		return sealed, nil
	}

	key, err := s.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open sealed key")
	}
	return key, nil
}

// MemoryKeyStore is an in-memory KeyStore for tests.
type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string][]byte)}
}

// Put stores a copy of the key bytes under keyID.
func (s *MemoryKeyStore) Put(ctx context.Context, keyID string, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(key))
	copy(stored, key)
	s.keys[keyID] = stored
	return nil
}

// Get returns a copy of the key bytes stored under keyID, or ErrNotFound.
func (s *MemoryKeyStore) Get(ctx context.Context, keyID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[keyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}
