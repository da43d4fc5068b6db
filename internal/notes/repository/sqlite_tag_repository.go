package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/database"
	"github.com/jamesandrewmyers/memento/internal/notes/domain"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// SQLiteTagRepository maintains the plaintext tag index: the tags table and
// the note_tags join rows. The index mirrors the tag sets inside encrypted
// payloads so notes can be browsed by tag without decryption.
type SQLiteTagRepository struct {
	db *sql.DB
}

// NewSQLiteTagRepository creates a new SQLiteTagRepository.
func NewSQLiteTagRepository(db *sql.DB) *SQLiteTagRepository {
	return &SQLiteTagRepository{
		db: db,
	}
}

// GetOrCreate returns the tag with the given name, creating it if absent.
func (r *SQLiteTagRepository) GetOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	querier := database.GetTx(ctx, r.db)

	// Upsert keeps concurrent callers from racing on the unique name.
	insert := `INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)
			   ON CONFLICT(name) DO NOTHING`

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate tag id")
	}

	if _, err := querier.ExecContext(ctx, insert, id.String(), name, time.Now().UTC()); err != nil {
		return nil, apperrors.Wrap(err, "failed to create tag")
	}

	var tag domain.Tag
	var rawID string
	query := `SELECT id, name, created_at FROM tags WHERE name = ?`
	err = querier.QueryRowContext(ctx, query, name).Scan(&rawID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get tag by name")
	}

	tag.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse tag id")
	}

	return &tag, nil
}

// ReplaceForNote rewrites the note's tag index rows to exactly the given tag
// names. Call inside the same transaction that writes the note ciphertext so
// the index never diverges from the payload.
func (r *SQLiteTagRepository) ReplaceForNote(ctx context.Context, noteID uuid.UUID, names []string) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ?`, noteID.String(),
	); err != nil {
		return apperrors.Wrap(err, "failed to clear note tags")
	}

	for _, name := range names {
		tag, err := r.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}

		if _, err := querier.ExecContext(ctx,
			`INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID.String(), tag.ID.String(),
		); err != nil {
			return apperrors.Wrap(err, "failed to link note tag")
		}
	}
	return nil
}

// ListByNote returns the note's indexed tag names in sorted order.
func (r *SQLiteTagRepository) ListByNote(ctx context.Context, noteID uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT t.name FROM tags t
			  JOIN note_tags nt ON nt.tag_id = t.id
			  WHERE nt.note_id = ?
			  ORDER BY t.name`

	rows, err := querier.QueryContext(ctx, query, noteID.String())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list note tags")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tag name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate note tags")
	}

	return names, nil
}
