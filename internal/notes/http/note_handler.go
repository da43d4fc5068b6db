// Package http provides HTTP handlers for note operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jamesandrewmyers/memento/internal/httputil"
	"github.com/jamesandrewmyers/memento/internal/notes/http/dto"
	notesUseCase "github.com/jamesandrewmyers/memento/internal/notes/usecase"
	customValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// NoteHandler handles HTTP requests for note operations.
type NoteHandler struct {
	noteUseCase notesUseCase.UseCase
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler with required dependencies.
func NewNoteHandler(noteUseCase notesUseCase.UseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUseCase: noteUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new note.
// POST /v1/notes - Returns 201 Created with the decrypted note content.
func (h *NoteHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateNoteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := notesUseCase.CreateNoteInput{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Pinned: req.Pinned,
	}

	note, err := h.noteUseCase.CreateNote(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Read the note back through the decryption path so the response
	// reflects exactly what was persisted.
	note, payload, err := h.noteUseCase.GetNote(c.Request.Context(), note.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNoteToResponse(note, payload))
}

// GetHandler retrieves a note by ID, decrypting its payload.
// GET /v1/notes/:id - Returns 200 OK with the decrypted note content.
func (h *NoteHandler) GetHandler(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid note ID format: must be a valid UUID"),
			h.logger)
		return
	}

	note, payload, err := h.noteUseCase.GetNote(c.Request.Context(), noteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note, payload))
}

// UpdateHandler replaces a note's content.
// PUT /v1/notes/:id - Returns 200 OK with the updated decrypted note content.
func (h *NoteHandler) UpdateHandler(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid note ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateNoteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := notesUseCase.UpdateNoteInput{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Pinned: req.Pinned,
	}

	if _, err := h.noteUseCase.UpdateNote(c.Request.Context(), noteID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	note, payload, err := h.noteUseCase.GetNote(c.Request.Context(), noteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note, payload))
}
