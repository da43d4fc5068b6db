// Package repository implements sqlite persistence for sealed key material.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jamesandrewmyers/memento/internal/database"
	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// SQLiteKeyRepository persists sealed key bytes in the vault_keys table.
type SQLiteKeyRepository struct {
	db *sql.DB
}

// NewSQLiteKeyRepository creates a key repository over the given database.
func NewSQLiteKeyRepository(db *sql.DB) *SQLiteKeyRepository {
	return &SQLiteKeyRepository{db: db}
}

// Put stores sealed key bytes under keyID, replacing any existing row.
func (r *SQLiteKeyRepository) Put(ctx context.Context, keyID string, sealed []byte) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO vault_keys (key_id, sealed_key, created_at)
			  VALUES (?, ?, ?)
			  ON CONFLICT(key_id) DO UPDATE SET sealed_key = excluded.sealed_key`

	_, err := querier.ExecContext(ctx, query, keyID, sealed, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to store key")
	}
	return nil
}

// Get returns the sealed key bytes for keyID, or ErrNotFound.
func (r *SQLiteKeyRepository) Get(ctx context.Context, keyID string) ([]byte, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT sealed_key FROM vault_keys WHERE key_id = ?`

	var sealed []byte
	err := querier.QueryRowContext(ctx, query, keyID).Scan(&sealed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key")
	}

	return sealed, nil
}
