package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/attachments/domain"
	"github.com/jamesandrewmyers/memento/internal/metrics"
)

// attachmentUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type attachmentUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAttachmentUseCaseWithMetrics wraps an attachment UseCase with metrics recording.
func NewAttachmentUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &attachmentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateAttachment records metrics for attachment creation operations.
func (c *attachmentUseCaseWithMetrics) CreateAttachment(
	ctx context.Context,
	noteID uuid.UUID,
	contentType string,
	content io.Reader,
) (*domain.Attachment, error) {
	start := time.Now()
	attachment, err := c.next.CreateAttachment(ctx, noteID, contentType, content)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "attachments", "attachment_create", status)
	c.metrics.RecordDuration(ctx, "attachments", "attachment_create", time.Since(start), status)

	return attachment, err
}

// ReadAttachment records metrics for attachment read operations.
func (c *attachmentUseCaseWithMetrics) ReadAttachment(ctx context.Context, id uuid.UUID) (*domain.Attachment, []byte, error) {
	start := time.Now()
	attachment, content, err := c.next.ReadAttachment(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "attachments", "attachment_read", status)
	c.metrics.RecordDuration(ctx, "attachments", "attachment_read", time.Since(start), status)

	return attachment, content, err
}

// ListAttachments records metrics for attachment list operations.
func (c *attachmentUseCaseWithMetrics) ListAttachments(ctx context.Context, noteID uuid.UUID) ([]*domain.Attachment, error) {
	start := time.Now()
	attachments, err := c.next.ListAttachments(ctx, noteID)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "attachments", "attachment_list", status)
	c.metrics.RecordDuration(ctx, "attachments", "attachment_list", time.Since(start), status)

	return attachments, err
}
