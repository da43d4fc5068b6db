// Package repository provides sqlite persistence for encrypted attachments.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/attachments/domain"
	"github.com/jamesandrewmyers/memento/internal/database"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// SQLiteAttachmentRepository handles attachment persistence for sqlite.
type SQLiteAttachmentRepository struct {
	db *sql.DB
}

// NewSQLiteAttachmentRepository creates a new SQLiteAttachmentRepository.
func NewSQLiteAttachmentRepository(db *sql.DB) *SQLiteAttachmentRepository {
	return &SQLiteAttachmentRepository{
		db: db,
	}
}

// Create inserts a new attachment row.
func (r *SQLiteAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO attachments (id, note_id, content_type, encrypted_data, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	attachment.CreatedAt = time.Now().UTC()

	_, err := querier.ExecContext(ctx, query,
		attachment.ID.String(), attachment.NoteID.String(),
		attachment.ContentType, attachment.EncryptedData, attachment.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create attachment")
	}
	return nil
}

// GetByID retrieves an attachment by ID.
func (r *SQLiteAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, note_id, content_type, encrypted_data, created_at
			  FROM attachments WHERE id = ?`

	return r.scanOne(querier.QueryRowContext(ctx, query, id.String()))
}

// ListByNote returns the note's attachments ordered by creation.
func (r *SQLiteAttachmentRepository) ListByNote(ctx context.Context, noteID uuid.UUID) ([]*domain.Attachment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, note_id, content_type, encrypted_data, created_at
			  FROM attachments WHERE note_id = ? ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, noteID.String())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list attachments")
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		attachment, err := scanAttachment(rows.Scan)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate attachments")
	}

	return attachments, nil
}

func (r *SQLiteAttachmentRepository) scanOne(row *sql.Row) (*domain.Attachment, error) {
	attachment, err := scanAttachment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, err
	}
	return attachment, nil
}

func scanAttachment(scan func(dest ...any) error) (*domain.Attachment, error) {
	var attachment domain.Attachment
	var rawID, rawNoteID string

	err := scan(&rawID, &rawNoteID, &attachment.ContentType, &attachment.EncryptedData, &attachment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan attachment")
	}

	attachment.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse attachment id")
	}
	attachment.NoteID, err = uuid.Parse(rawNoteID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse attachment note id")
	}

	return &attachment, nil
}
