// Package http provides the HTTP handler for export operations.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/export/http/dto"
	exportUseCase "github.com/jamesandrewmyers/memento/internal/export/usecase"
	"github.com/jamesandrewmyers/memento/internal/httputil"
	customValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// Submitter enqueues export jobs for background execution.
type Submitter interface {
	Submit(ctx context.Context, noteID uuid.UUID, recipientKey []byte) (<-chan exportUseCase.JobResult, error)
}

// ExportHandler handles HTTP requests for note exports. Jobs run on the
// export worker; the handler waits for completion so the client gets the
// archive path or the failure in one round trip.
type ExportHandler struct {
	submitter Submitter
	logger    *slog.Logger
}

// NewExportHandler creates a new export handler with required dependencies.
func NewExportHandler(submitter Submitter, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		submitter: submitter,
		logger:    logger,
	}
}

// CreateHandler exports a note for the given recipient.
// POST /v1/notes/:id/exports - Returns 201 Created with the archive location.
func (h *ExportHandler) CreateHandler(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid note ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.CreateExportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.submitter.Submit(c.Request.Context(), noteID, []byte(req.RecipientPublicKey))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, httputil.ErrorResponse{
			Error:   "export_queue_full",
			Message: "The export queue is full. Please retry later.",
		})
		return
	}

	select {
	case result := <-results:
		if result.Err != nil {
			httputil.HandleErrorGin(c, result.Err, h.logger)
			return
		}

		c.JSON(http.StatusCreated, dto.CreateExportResponse{
			ExportID: filepath.Base(result.Path),
			Path:     result.Path,
		})

	case <-c.Request.Context().Done():
		// Client gave up; the worker finishes or cancels on its own.
		c.Abort()
	}
}
