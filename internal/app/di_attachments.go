package app

import (
	"fmt"
	"sync"

	attachmentsRepository "github.com/jamesandrewmyers/memento/internal/attachments/repository"
	attachmentsUseCase "github.com/jamesandrewmyers/memento/internal/attachments/usecase"
)

// attachmentComponents groups the attachment domain dependencies.
type attachmentComponents struct {
	repo    *attachmentsRepository.SQLiteAttachmentRepository
	useCase attachmentsUseCase.UseCase

	repoInit    sync.Once
	useCaseInit sync.Once
}

// AttachmentRepository returns the sqlite-backed attachment repository.
func (c *Container) AttachmentRepository() (*attachmentsRepository.SQLiteAttachmentRepository, error) {
	c.attachments.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["attachmentRepo"] = fmt.Errorf("failed to get database for attachment repository: %w", err)
			return
		}
		c.attachments.repo = attachmentsRepository.NewSQLiteAttachmentRepository(db)
	})
	if storedErr, exists := c.initErrors["attachmentRepo"]; exists {
		return nil, storedErr
	}
	return c.attachments.repo, nil
}

// AttachmentUseCase returns the attachment use case instance.
func (c *Container) AttachmentUseCase() (attachmentsUseCase.UseCase, error) {
	c.attachments.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get tx manager for attachment use case: %w", err)
			return
		}
		attachmentRepo, err := c.AttachmentRepository()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get attachment repository for attachment use case: %w", err)
			return
		}
		noteRepo, err := c.NoteRepository()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get note repository for attachment use case: %w", err)
			return
		}
		envelope, err := c.ContentEnvelope()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get envelope for attachment use case: %w", err)
			return
		}
		keyManager, err := c.KeyManager()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get key manager for attachment use case: %w", err)
			return
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["attachmentUseCase"] = fmt.Errorf("failed to get business metrics for attachment use case: %w", err)
			return
		}
		useCase := attachmentsUseCase.NewAttachmentUseCase(txManager, attachmentRepo, noteRepo, envelope, keyManager)
		c.attachments.useCase = attachmentsUseCase.NewAttachmentUseCaseWithMetrics(useCase, business)
	})
	if storedErr, exists := c.initErrors["attachmentUseCase"]; exists {
		return nil, storedErr
	}
	return c.attachments.useCase, nil
}
