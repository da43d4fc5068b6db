package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/metrics"
)

// exportUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type exportUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewExportUseCaseWithMetrics wraps an export UseCase with metrics recording.
func NewExportUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &exportUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Export records metrics for note export operations.
func (c *exportUseCaseWithMetrics) Export(ctx context.Context, noteID uuid.UUID, recipientPublicKey []byte) (string, error) {
	start := time.Now()
	path, err := c.next.Export(ctx, noteID, recipientPublicKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "export", "note_export", status)
	c.metrics.RecordDuration(ctx, "export", "note_export", time.Since(start), status)

	return path, err
}
