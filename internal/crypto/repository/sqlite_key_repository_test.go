package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
	"github.com/jamesandrewmyers/memento/internal/testutil"
)

func TestNewSQLiteKeyRepository(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteKeyRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestSQLiteKeyRepository_Put(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteKeyRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "content-key:note-1", []byte("sealed-key-bytes"))
	assert.NoError(t, err)

	// Verify the key was stored
	sealed, err := repo.Get(ctx, "content-key:note-1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("sealed-key-bytes"), sealed)
}

func TestSQLiteKeyRepository_Put_Replace(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteKeyRepository(db)
	ctx := context.Background()

	err := repo.Put(ctx, "export-identity", []byte("first"))
	require.NoError(t, err)

	err = repo.Put(ctx, "export-identity", []byte("second"))
	assert.NoError(t, err)

	sealed, err := repo.Get(ctx, "export-identity")
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), sealed)
}

func TestSQLiteKeyRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewSQLiteKeyRepository(db)
	ctx := context.Background()

	sealed, err := repo.Get(ctx, "missing-key")
	assert.Nil(t, sealed)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSQLiteKeyRepository_Put_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO vault_keys").WillReturnError(assert.AnError)

	repo := NewSQLiteKeyRepository(db)
	err = repo.Put(context.Background(), "key-id", []byte("sealed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKeyRepository_Get_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT sealed_key FROM vault_keys").WillReturnError(assert.AnError)

	repo := NewSQLiteKeyRepository(db)
	sealed, err := repo.Get(context.Background(), "key-id")
	assert.Nil(t, sealed)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
