// Package repository provides sqlite persistence for notes and the
// plaintext tag index.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/database"
	"github.com/jamesandrewmyers/memento/internal/notes/domain"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// SQLiteNoteRepository handles note persistence for sqlite.
type SQLiteNoteRepository struct {
	db *sql.DB
}

// NewSQLiteNoteRepository creates a new SQLiteNoteRepository.
func NewSQLiteNoteRepository(db *sql.DB) *SQLiteNoteRepository {
	return &SQLiteNoteRepository{
		db: db,
	}
}

// Create inserts a new note row.
func (r *SQLiteNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO notes (id, encrypted_data, attachment_count, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := querier.ExecContext(ctx, query,
		note.ID.String(), note.EncryptedData, note.AttachmentCount, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create note")
	}
	return nil
}

// GetByID retrieves a note by ID.
func (r *SQLiteNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, encrypted_data, attachment_count, created_at, updated_at
			  FROM notes WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &note.EncryptedData, &note.AttachmentCount, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get note by id")
	}

	note.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse note id")
	}

	return &note, nil
}

// Update replaces the note's ciphertext and bumps updated_at.
func (r *SQLiteNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE notes SET encrypted_data = ?, updated_at = ? WHERE id = ?`

	note.UpdatedAt = time.Now().UTC()

	result, err := querier.ExecContext(ctx, query, note.EncryptedData, note.UpdatedAt, note.ID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update note")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// IncrementAttachmentCount adds delta to the note's attachment counter. The
// update runs against the current stored value, so callers inside a
// transaction never lose concurrent increments.
func (r *SQLiteNoteRepository) IncrementAttachmentCount(ctx context.Context, id uuid.UUID, delta int) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE notes SET attachment_count = attachment_count + ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, delta, time.Now().UTC(), id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update attachment count")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
