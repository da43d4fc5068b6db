// Package http provides HTTP handlers for attachment operations.
package http

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/attachments/http/dto"
	attachmentsUseCase "github.com/jamesandrewmyers/memento/internal/attachments/usecase"
	"github.com/jamesandrewmyers/memento/internal/httputil"
	customValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// AttachmentHandler handles HTTP requests for attachment operations.
type AttachmentHandler struct {
	attachmentUseCase attachmentsUseCase.UseCase
	logger            *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler with required dependencies.
func NewAttachmentHandler(attachmentUseCase attachmentsUseCase.UseCase, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentUseCase: attachmentUseCase,
		logger:            logger,
	}
}

// CreateHandler attaches a file to a note.
// POST /v1/notes/:id/attachments - Returns 201 Created with attachment metadata.
func (h *AttachmentHandler) CreateHandler(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid note ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.CreateAttachmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 content: %w", err), h.logger)
		return
	}

	attachment, err := h.attachmentUseCase.CreateAttachment(
		c.Request.Context(),
		noteID,
		req.ContentType,
		bytes.NewReader(content),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAttachmentToResponse(attachment))
}

// GetHandler retrieves an attachment by ID, decrypting its content.
// GET /v1/attachments/:id - Returns 200 OK with metadata and base64 content.
func (h *AttachmentHandler) GetHandler(c *gin.Context) {
	attachmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid attachment ID format: must be a valid UUID"),
			h.logger)
		return
	}

	attachment, content, err := h.attachmentUseCase.ReadAttachment(c.Request.Context(), attachmentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttachmentToContentResponse(attachment, content))
}

// ListHandler lists attachment metadata for a note.
// GET /v1/notes/:id/attachments - Returns 200 OK with the attachment list.
func (h *AttachmentHandler) ListHandler(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid note ID format: must be a valid UUID"),
			h.logger)
		return
	}

	attachments, err := h.attachmentUseCase.ListAttachments(c.Request.Context(), noteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttachmentsToListResponse(attachments))
}
