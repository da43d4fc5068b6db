package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

func testKeeperURI(t *testing.T) string {
	t.Helper()
	keeperKey := make([]byte, 32)
	_, err := rand.Read(keeperKey)
	require.NoError(t, err)
	return fmt.Sprintf("base64key://%s", base64.URLEncoding.EncodeToString(keeperKey))
}

func TestOpenKeeper(t *testing.T) {
	ctx := context.Background()

	t.Run("local keeper", func(t *testing.T) {
		keeper, err := OpenKeeper(ctx, testKeeperURI(t))
		require.NoError(t, err)
		defer keeper.Close()
		assert.NotNil(t, keeper)
	})

	t.Run("invalid URI", func(t *testing.T) {
		keeper, err := OpenKeeper(ctx, "bogus://nope")
		assert.Nil(t, keeper)
		assert.Error(t, err)
	})
}

func TestKeeperKeyStore(t *testing.T) {
	ctx := context.Background()

	keeper, err := OpenKeeper(ctx, testKeeperURI(t))
	require.NoError(t, err)
	defer keeper.Close()

	t.Run("put and get through keeper", func(t *testing.T) {
		repo := NewMemoryKeyStore()
		store := NewKeeperKeyStore(repo, keeper)

		key := []byte("some-key-material-32-bytes-long!")
		err := store.Put(ctx, "content-key:abc", key)
		require.NoError(t, err)

		// The repository holds sealed bytes, not the raw key.
		sealed, err := repo.Get(ctx, "content-key:abc")
		require.NoError(t, err)
		assert.NotEqual(t, key, sealed)

		got, err := store.Get(ctx, "content-key:abc")
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("nil keeper stores unsealed", func(t *testing.T) {
		repo := NewMemoryKeyStore()
		store := NewKeeperKeyStore(repo, nil)

		key := []byte("raw")
		err := store.Put(ctx, "k", key)
		require.NoError(t, err)

		sealed, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, key, sealed)

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("missing key", func(t *testing.T) {
		store := NewKeeperKeyStore(NewMemoryKeyStore(), keeper)

		got, err := store.Get(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("corrupted sealed bytes", func(t *testing.T) {
		repo := NewMemoryKeyStore()
		store := NewKeeperKeyStore(repo, keeper)

		require.NoError(t, repo.Put(ctx, "k", []byte("not sealed by the keeper")))

		got, err := store.Get(ctx, "k")
		assert.Nil(t, got)
		assert.Error(t, err)
	})
}

func TestMemoryKeyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyStore()

	t.Run("missing key", func(t *testing.T) {
		got, err := store.Get(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("put and get returns a copy", func(t *testing.T) {
		key := []byte("key-bytes")
		require.NoError(t, store.Put(ctx, "k", key))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, key, got)

		// Mutating the returned slice must not affect the stored key.
		got[0] = 'X'
		again, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, key, again)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k", []byte("first")))
		require.NoError(t, store.Put(ctx, "k", []byte("second")))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})
}
