package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/metrics"
	"github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// noteUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type noteUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewNoteUseCaseWithMetrics wraps a note UseCase with metrics recording.
func NewNoteUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &noteUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateNote records metrics for note creation operations.
func (c *noteUseCaseWithMetrics) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	start := time.Now()
	note, err := c.next.CreateNote(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "notes", "note_create", status)
	c.metrics.RecordDuration(ctx, "notes", "note_create", time.Since(start), status)

	return note, err
}

// GetNote records metrics for note retrieval operations.
func (c *noteUseCaseWithMetrics) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, *domain.NotePayload, error) {
	start := time.Now()
	note, payload, err := c.next.GetNote(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "notes", "note_get", status)
	c.metrics.RecordDuration(ctx, "notes", "note_get", time.Since(start), status)

	return note, payload, err
}

// UpdateNote records metrics for note update operations.
func (c *noteUseCaseWithMetrics) UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	start := time.Now()
	note, err := c.next.UpdateNote(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "notes", "note_update", status)
	c.metrics.RecordDuration(ctx, "notes", "note_update", time.Since(start), status)

	return note, err
}
