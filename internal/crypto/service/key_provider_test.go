package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
)

func TestRandomKeyProvider(t *testing.T) {
	provider := NewRandomKeyProvider()

	t.Run("content keys are 32 bytes and distinct", func(t *testing.T) {
		key1, err := provider.ContentKey()
		require.NoError(t, err)
		key2, err := provider.ContentKey()
		require.NoError(t, err)

		assert.Len(t, key1, cryptoDomain.KeySize)
		assert.Len(t, key2, cryptoDomain.KeySize)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("identity is RSA-2048", func(t *testing.T) {
		priv, err := provider.Identity()
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.IdentityKeyBits, priv.N.BitLen())
	})
}

func TestFixedKeyProvider(t *testing.T) {
	seed := []byte("test-seed")

	t.Run("same seed yields same key sequence", func(t *testing.T) {
		p1 := NewFixedKeyProvider(seed)
		p2 := NewFixedKeyProvider(seed)

		for i := 0; i < 3; i++ {
			key1, err := p1.ContentKey()
			require.NoError(t, err)
			key2, err := p2.ContentKey()
			require.NoError(t, err)
			assert.Equal(t, key1, key2)
			assert.Len(t, key1, cryptoDomain.KeySize)
		}
	})

	t.Run("keys within a sequence are distinct", func(t *testing.T) {
		p := NewFixedKeyProvider(seed)
		key1, err := p.ContentKey()
		require.NoError(t, err)
		key2, err := p.ContentKey()
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("different seeds yield different keys", func(t *testing.T) {
		key1, err := NewFixedKeyProvider([]byte("seed-a")).ContentKey()
		require.NoError(t, err)
		key2, err := NewFixedKeyProvider([]byte("seed-b")).ContentKey()
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("identity is cached", func(t *testing.T) {
		p := NewFixedKeyProvider(seed)
		priv1, err := p.Identity()
		require.NoError(t, err)
		priv2, err := p.Identity()
		require.NoError(t, err)
		assert.Same(t, priv1, priv2)
		assert.Equal(t, cryptoDomain.IdentityKeyBits, priv1.N.BitLen())
	})
}
