package app

import (
	"fmt"
	"sync"

	exportUseCase "github.com/jamesandrewmyers/memento/internal/export/usecase"
	"github.com/jamesandrewmyers/memento/internal/reporting"
)

// exportComponents groups the export domain dependencies.
type exportComponents struct {
	reporter reporting.Reporter
	useCase  exportUseCase.UseCase
	worker   *exportUseCase.Worker

	reporterInit sync.Once
	useCaseInit  sync.Once
	workerInit   sync.Once
}

// Reporter returns the failure reporter.
func (c *Container) Reporter() (reporting.Reporter, error) {
	c.export.reporterInit.Do(func() {
		c.export.reporter = reporting.NewSlogReporter(c.Logger())
	})
	return c.export.reporter, nil
}

// ExportUseCase returns the export use case instance.
func (c *Container) ExportUseCase() (exportUseCase.UseCase, error) {
	c.export.useCaseInit.Do(func() {
		noteRepo, err := c.NoteRepository()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get note repository for export use case: %w", err)
			return
		}
		attachmentRepo, err := c.AttachmentRepository()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get attachment repository for export use case: %w", err)
			return
		}
		keyManager, err := c.KeyManager()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get key manager for export use case: %w", err)
			return
		}
		contentEnvelope, err := c.ContentEnvelope()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get content envelope for export use case: %w", err)
			return
		}
		exportEnvelope, err := c.ExportEnvelope()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get export envelope for export use case: %w", err)
			return
		}
		keyWrapper, err := c.KeyWrapper()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get key wrapper for export use case: %w", err)
			return
		}
		keyProvider, err := c.KeyProvider()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get key provider for export use case: %w", err)
			return
		}
		reporter, err := c.Reporter()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get reporter for export use case: %w", err)
			return
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["exportUseCase"] = fmt.Errorf("failed to get business metrics for export use case: %w", err)
			return
		}
		useCase := exportUseCase.NewExportUseCase(
			noteRepo,
			attachmentRepo,
			keyManager,
			contentEnvelope,
			exportEnvelope,
			keyWrapper,
			keyProvider,
			reporter,
			c.config.ExportDir,
		)
		c.export.useCase = exportUseCase.NewExportUseCaseWithMetrics(useCase, business)
	})
	if storedErr, exists := c.initErrors["exportUseCase"]; exists {
		return nil, storedErr
	}
	return c.export.useCase, nil
}

// ExportWorker returns the background worker executing export jobs.
func (c *Container) ExportWorker() (*exportUseCase.Worker, error) {
	c.export.workerInit.Do(func() {
		useCase, err := c.ExportUseCase()
		if err != nil {
			c.initErrors["exportWorker"] = fmt.Errorf("failed to get export use case for worker: %w", err)
			return
		}
		c.export.worker = exportUseCase.NewWorker(useCase, c.config.ExportWorkerQueueSize, c.Logger())
	})
	if storedErr, exists := c.initErrors["exportWorker"]; exists {
		return nil, storedErr
	}
	return c.export.worker, nil
}
