// Package usecase implements the attachment business logic: sealing
// attachment content under the owning note's content key.
package usecase

import (
	"context"
	"io"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/attachments/domain"
	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
	"github.com/jamesandrewmyers/memento/internal/database"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
	appValidation "github.com/jamesandrewmyers/memento/internal/validation"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// UseCase defines the interface for attachment business logic operations.
type UseCase interface {
	CreateAttachment(ctx context.Context, noteID uuid.UUID, contentType string, content io.Reader) (*domain.Attachment, error)
	ReadAttachment(ctx context.Context, id uuid.UUID) (*domain.Attachment, []byte, error)
	ListAttachments(ctx context.Context, noteID uuid.UUID) ([]*domain.Attachment, error)
}

// AttachmentRepository interface defines attachment repository operations.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByNote(ctx context.Context, noteID uuid.UUID) ([]*domain.Attachment, error)
}

// NoteRepository is the slice of note persistence the attachment flow needs:
// existence checks and attachment bookkeeping.
type NoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*notesDomain.Note, error)
	IncrementAttachmentCount(ctx context.Context, id uuid.UUID, delta int) error
}

// AttachmentUseCase handles attachment-related business logic. Attachment
// bytes are sealed under the owning note's content key; the attachment row
// and the note's counter update commit in one transaction.
type AttachmentUseCase struct {
	txManager      database.TxManager
	attachmentRepo AttachmentRepository
	noteRepo       NoteRepository
	envelope       cryptoService.Envelope
	keyManager     cryptoService.KeyManager
}

// NewAttachmentUseCase creates a new AttachmentUseCase.
func NewAttachmentUseCase(
	txManager database.TxManager,
	attachmentRepo AttachmentRepository,
	noteRepo NoteRepository,
	envelope cryptoService.Envelope,
	keyManager cryptoService.KeyManager,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		txManager:      txManager,
		attachmentRepo: attachmentRepo,
		noteRepo:       noteRepo,
		envelope:       envelope,
		keyManager:     keyManager,
	}
}

// CreateAttachment reads the content, seals it under the owning note's
// content key and persists it. The note's attachment counter is updated in
// the same transaction.
func (uc *AttachmentUseCase) CreateAttachment(
	ctx context.Context,
	noteID uuid.UUID,
	contentType string,
	content io.Reader,
) (*domain.Attachment, error) {
	err := appValidation.WrapValidationError(validation.Validate(contentType,
		validation.Required.Error("content type is required"),
		appValidation.NotBlank,
	))
	if err != nil {
		return nil, err
	}

	// The note must exist before we derive a key for it.
	if _, err := uc.noteRepo.GetByID(ctx, noteID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read attachment content")
	}

	key, err := uc.keyManager.ContentKey(ctx, noteID)
	if err != nil {
		return nil, err
	}

	blob, err := uc.envelope.Seal(data, key)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		ID:            id,
		NoteID:        noteID,
		ContentType:   contentType,
		EncryptedData: blob,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.attachmentRepo.Create(ctx, attachment); err != nil {
			return err
		}
		return uc.noteRepo.IncrementAttachmentCount(ctx, noteID, 1)
	})
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

// ReadAttachment loads an attachment and opens its content with the owning
// note's content key.
func (uc *AttachmentUseCase) ReadAttachment(ctx context.Context, id uuid.UUID) (*domain.Attachment, []byte, error) {
	attachment, err := uc.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	key, err := uc.keyManager.ContentKey(ctx, attachment.NoteID)
	if err != nil {
		return nil, nil, err
	}

	data, err := uc.envelope.Open(attachment.EncryptedData, key)
	if err != nil {
		return nil, nil, err
	}

	return attachment, data, nil
}

// ListAttachments returns the note's attachments without opening them.
func (uc *AttachmentUseCase) ListAttachments(ctx context.Context, noteID uuid.UUID) ([]*domain.Attachment, error) {
	return uc.attachmentRepo.ListByNote(ctx, noteID)
}
