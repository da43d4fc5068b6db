// Package usecase implements the note business logic: payload sealing,
// persistence and tag index maintenance.
package usecase

import (
	"context"
	"slices"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
	"github.com/jamesandrewmyers/memento/internal/database"
	"github.com/jamesandrewmyers/memento/internal/notes/domain"
	appValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// CreateNoteInput contains the input data for note creation.
type CreateNoteInput struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned"`
}

// UpdateNoteInput contains the input data for a note payload update.
type UpdateNoteInput struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned"`
}

// UseCase defines the interface for note business logic operations.
type UseCase interface {
	CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, *domain.NotePayload, error)
	UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error)
}

// NoteRepository interface defines note repository operations.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
}

// TagRepository interface defines tag index repository operations.
type TagRepository interface {
	ReplaceForNote(ctx context.Context, noteID uuid.UUID, names []string) error
	ListByNote(ctx context.Context, noteID uuid.UUID) ([]string, error)
}

// NoteUseCase handles note-related business logic. Payloads are sealed under
// the note's content key before they reach the repository; the plaintext tag
// index is written in the same transaction as the ciphertext so the two can
// never diverge.
type NoteUseCase struct {
	txManager  database.TxManager
	noteRepo   NoteRepository
	tagRepo    TagRepository
	envelope   cryptoService.Envelope
	keyManager cryptoService.KeyManager
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(
	txManager database.TxManager,
	noteRepo NoteRepository,
	tagRepo TagRepository,
	envelope cryptoService.Envelope,
	keyManager cryptoService.KeyManager,
) *NoteUseCase {
	return &NoteUseCase{
		txManager:  txManager,
		noteRepo:   noteRepo,
		tagRepo:    tagRepo,
		envelope:   envelope,
		keyManager: keyManager,
	}
}

// validateNoteInput validates title and tag names.
func validateNoteInput(title string, tags []string) error {
	err := validation.Errors{
		"title": validation.Validate(title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		"tags": validation.Validate(tags,
			validation.Each(appValidation.TagName),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// CreateNote seals a new note payload and persists it together with its tag
// index rows in a single transaction.
func (uc *NoteUseCase) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if err := validateNoteInput(input.Title, input.Tags); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payload := &domain.NotePayload{
		Title:     input.Title,
		Body:      input.Body,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
		Pinned:    input.Pinned,
	}
	payload.Normalize()

	key, err := uc.keyManager.ContentKey(ctx, id)
	if err != nil {
		return nil, err
	}

	blob, err := uc.envelope.SealPayload(payload, key)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:            id,
		EncryptedData: blob,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.noteRepo.Create(ctx, note); err != nil {
			return err
		}
		return uc.tagRepo.ReplaceForNote(ctx, id, payload.Tags)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// GetNote loads a note and opens its payload. The plaintext tag index is
// compared against the payload's tag set; a mismatch surfaces as
// ErrTagIndexDivergence rather than silently returning inconsistent data.
func (uc *NoteUseCase) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, *domain.NotePayload, error) {
	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	key, err := uc.keyManager.ContentKey(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	payload, err := uc.envelope.OpenPayload(note.EncryptedData, key)
	if err != nil {
		return nil, nil, err
	}

	indexed, err := uc.tagRepo.ListByNote(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !slices.Equal(indexed, payload.Tags) {
		return nil, nil, domain.ErrTagIndexDivergence
	}

	return note, payload, nil
}

// UpdateNote replaces a note's payload and rewrites its tag index in one
// transaction. The payload's creation timestamp is preserved.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	if err := validateNoteInput(input.Title, input.Tags); err != nil {
		return nil, err
	}

	note, current, err := uc.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := &domain.NotePayload{
		Title:     input.Title,
		Body:      input.Body,
		Tags:      input.Tags,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now().UTC(),
		Pinned:    input.Pinned,
	}
	payload.Normalize()

	key, err := uc.keyManager.ContentKey(ctx, id)
	if err != nil {
		return nil, err
	}

	blob, err := uc.envelope.SealPayload(payload, key)
	if err != nil {
		return nil, err
	}
	note.EncryptedData = blob

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.noteRepo.Update(ctx, note); err != nil {
			return err
		}
		return uc.tagRepo.ReplaceForNote(ctx, id, payload.Tags)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}
