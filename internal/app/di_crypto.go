package app

import (
	"context"
	"fmt"
	"sync"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	cryptoRepository "github.com/jamesandrewmyers/memento/internal/crypto/repository"
	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
)

// cryptoComponents groups the key management and envelope dependencies.
type cryptoComponents struct {
	keeper          *secrets.Keeper
	keyRepo         cryptoService.KeyRepository
	keyStore        cryptoService.KeyStore
	keyProvider     cryptoService.KeyProvider
	keyManager      cryptoService.KeyManager
	keyWrapper      cryptoService.KeyWrapper
	contentEnvelope cryptoService.Envelope
	exportEnvelope  cryptoService.Envelope

	keeperInit          sync.Once
	keyRepoInit         sync.Once
	keyStoreInit        sync.Once
	keyProviderInit     sync.Once
	keyManagerInit      sync.Once
	keyWrapperInit      sync.Once
	contentEnvelopeInit sync.Once
	exportEnvelopeInit  sync.Once
}

// Keeper returns the secrets keeper protecting persisted key material, or nil
// when no keeper URI is configured (key bytes are stored unsealed).
func (c *Container) Keeper() (*secrets.Keeper, error) {
	c.crypto.keeperInit.Do(func() {
		if c.config.KeeperURI == "" {
			c.Logger().Warn("no keeper URI configured, key material will be stored unsealed")
			return
		}
		keeper, err := cryptoService.OpenKeeper(context.Background(), c.config.KeeperURI)
		if err != nil {
			c.initErrors["keeper"] = err
			return
		}
		c.crypto.keeper = keeper
	})
	if storedErr, exists := c.initErrors["keeper"]; exists {
		return nil, storedErr
	}
	return c.crypto.keeper, nil
}

// KeyRepository returns the sqlite-backed key repository.
func (c *Container) KeyRepository() (cryptoService.KeyRepository, error) {
	c.crypto.keyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["keyRepo"] = fmt.Errorf("failed to get database for key repository: %w", err)
			return
		}
		c.crypto.keyRepo = cryptoRepository.NewSQLiteKeyRepository(db)
	})
	if storedErr, exists := c.initErrors["keyRepo"]; exists {
		return nil, storedErr
	}
	return c.crypto.keyRepo, nil
}

// KeyStore returns the keeper-sealed key store.
func (c *Container) KeyStore() (cryptoService.KeyStore, error) {
	c.crypto.keyStoreInit.Do(func() {
		repo, err := c.KeyRepository()
		if err != nil {
			c.initErrors["keyStore"] = fmt.Errorf("failed to get key repository for key store: %w", err)
			return
		}
		keeper, err := c.Keeper()
		if err != nil {
			c.initErrors["keyStore"] = fmt.Errorf("failed to get keeper for key store: %w", err)
			return
		}
		c.crypto.keyStore = cryptoService.NewKeeperKeyStore(repo, keeper)
	})
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.crypto.keyStore, nil
}

// KeyProvider returns the key generation source.
func (c *Container) KeyProvider() (cryptoService.KeyProvider, error) {
	c.crypto.keyProviderInit.Do(func() {
		c.crypto.keyProvider = cryptoService.NewRandomKeyProvider()
	})
	return c.crypto.keyProvider, nil
}

// KeyManager returns the key manager handling the export identity and
// per-note content keys.
func (c *Container) KeyManager() (cryptoService.KeyManager, error) {
	c.crypto.keyManagerInit.Do(func() {
		store, err := c.KeyStore()
		if err != nil {
			c.initErrors["keyManager"] = fmt.Errorf("failed to get key store for key manager: %w", err)
			return
		}
		provider, err := c.KeyProvider()
		if err != nil {
			c.initErrors["keyManager"] = fmt.Errorf("failed to get key provider for key manager: %w", err)
			return
		}
		c.crypto.keyManager = cryptoService.NewKeyManager(store, provider)
	})
	if storedErr, exists := c.initErrors["keyManager"]; exists {
		return nil, storedErr
	}
	return c.crypto.keyManager, nil
}

// KeyWrapper returns the RSA-OAEP key wrapper used for exports.
func (c *Container) KeyWrapper() (cryptoService.KeyWrapper, error) {
	c.crypto.keyWrapperInit.Do(func() {
		c.crypto.keyWrapper = cryptoService.NewRSAKeyWrap()
	})
	return c.crypto.keyWrapper, nil
}

// ContentEnvelope returns the envelope sealing data at rest with the
// configured algorithm.
func (c *Container) ContentEnvelope() (cryptoService.Envelope, error) {
	c.crypto.contentEnvelopeInit.Do(func() {
		algorithm, err := contentAlgorithm(c.config.ContentKeyAlgorithm)
		if err != nil {
			c.initErrors["contentEnvelope"] = err
			return
		}
		c.crypto.contentEnvelope = cryptoService.NewEnvelope(cryptoService.NewAEADManager(), algorithm)
	})
	if storedErr, exists := c.initErrors["contentEnvelope"]; exists {
		return nil, storedErr
	}
	return c.crypto.contentEnvelope, nil
}

// ExportEnvelope returns the envelope sealing export bundles. Always
// AES-256-GCM: the archive manifest names that cipher.
func (c *Container) ExportEnvelope() (cryptoService.Envelope, error) {
	c.crypto.exportEnvelopeInit.Do(func() {
		c.crypto.exportEnvelope = cryptoService.NewEnvelope(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	})
	return c.crypto.exportEnvelope, nil
}

// contentAlgorithm maps the configured algorithm name to its domain value.
func contentAlgorithm(name string) (cryptoDomain.Algorithm, error) {
	switch cryptoDomain.Algorithm(name) {
	case cryptoDomain.AESGCM:
		return cryptoDomain.AESGCM, nil
	case cryptoDomain.ChaCha20:
		return cryptoDomain.ChaCha20, nil
	default:
		return "", fmt.Errorf("unsupported content key algorithm: %q", name)
	}
}
