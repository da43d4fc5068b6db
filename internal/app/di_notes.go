package app

import (
	"fmt"
	"sync"

	notesRepository "github.com/jamesandrewmyers/memento/internal/notes/repository"
	notesUseCase "github.com/jamesandrewmyers/memento/internal/notes/usecase"
)

// noteComponents groups the note domain dependencies.
type noteComponents struct {
	noteRepo *notesRepository.SQLiteNoteRepository
	tagRepo  *notesRepository.SQLiteTagRepository
	useCase  notesUseCase.UseCase

	noteRepoInit sync.Once
	tagRepoInit  sync.Once
	useCaseInit  sync.Once
}

// NoteRepository returns the sqlite-backed note repository.
func (c *Container) NoteRepository() (*notesRepository.SQLiteNoteRepository, error) {
	c.notes.noteRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["noteRepo"] = fmt.Errorf("failed to get database for note repository: %w", err)
			return
		}
		c.notes.noteRepo = notesRepository.NewSQLiteNoteRepository(db)
	})
	if storedErr, exists := c.initErrors["noteRepo"]; exists {
		return nil, storedErr
	}
	return c.notes.noteRepo, nil
}

// TagRepository returns the sqlite-backed tag index repository.
func (c *Container) TagRepository() (*notesRepository.SQLiteTagRepository, error) {
	c.notes.tagRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["tagRepo"] = fmt.Errorf("failed to get database for tag repository: %w", err)
			return
		}
		c.notes.tagRepo = notesRepository.NewSQLiteTagRepository(db)
	})
	if storedErr, exists := c.initErrors["tagRepo"]; exists {
		return nil, storedErr
	}
	return c.notes.tagRepo, nil
}

// NoteUseCase returns the note use case instance.
func (c *Container) NoteUseCase() (notesUseCase.UseCase, error) {
	c.notes.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get tx manager for note use case: %w", err)
			return
		}
		noteRepo, err := c.NoteRepository()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get note repository for note use case: %w", err)
			return
		}
		tagRepo, err := c.TagRepository()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get tag repository for note use case: %w", err)
			return
		}
		envelope, err := c.ContentEnvelope()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get envelope for note use case: %w", err)
			return
		}
		keyManager, err := c.KeyManager()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get key manager for note use case: %w", err)
			return
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get business metrics for note use case: %w", err)
			return
		}
		useCase := notesUseCase.NewNoteUseCase(txManager, noteRepo, tagRepo, envelope, keyManager)
		c.notes.useCase = notesUseCase.NewNoteUseCaseWithMetrics(useCase, business)
	})
	if storedErr, exists := c.initErrors["noteUseCase"]; exists {
		return nil, storedErr
	}
	return c.notes.useCase, nil
}
