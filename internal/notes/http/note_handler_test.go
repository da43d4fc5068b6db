package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
	notesUseCase "github.com/jamesandrewmyers/memento/internal/notes/usecase"
)

// MockNoteUseCase is a mock implementation of the note use case.
type MockNoteUseCase struct {
	mock.Mock
}

func (m *MockNoteUseCase) CreateNote(ctx context.Context, input notesUseCase.CreateNoteInput) (*notesDomain.Note, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

func (m *MockNoteUseCase) GetNote(ctx context.Context, id uuid.UUID) (*notesDomain.Note, *notesDomain.NotePayload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*notesDomain.Note), args.Get(1).(*notesDomain.NotePayload), args.Error(2)
}

func (m *MockNoteUseCase) UpdateNote(ctx context.Context, id uuid.UUID, input notesUseCase.UpdateNoteInput) (*notesDomain.Note, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

func newHandlerTest(t *testing.T) (*MockNoteUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	useCase := &MockNoteUseCase{}
	handler := NewNoteHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.POST("/v1/notes", handler.CreateHandler)
	router.GET("/v1/notes/:id", handler.GetHandler)
	router.PUT("/v1/notes/:id", handler.UpdateHandler)
	return useCase, router
}

func sampleNote() (*notesDomain.Note, *notesDomain.NotePayload) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	note := &notesDomain.Note{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	payload := &notesDomain.NotePayload{
		Title:     "Test Note",
		Body:      "body",
		Tags:      []string{"test-tag"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return note, payload
}

func TestNoteHandler_CreateHandler(t *testing.T) {
	t.Run("creates note", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		note, payload := sampleNote()

		useCase.On("CreateNote", mock.Anything, mock.Anything).Return(note, nil)
		useCase.On("GetNote", mock.Anything, note.ID).Return(note, payload, nil)

		body := bytes.NewReader([]byte(`{"title":"Test Note","body":"body","tags":["test-tag"]}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/notes", body))

		require.Equal(t, http.StatusCreated, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "Test Note", response["title"])
		assert.Equal(t, note.ID.String(), response["id"])
		useCase.AssertExpectations(t)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, router := newHandlerTest(t)

		body := bytes.NewReader([]byte(`{"title":"   "}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/notes", body))

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, router := newHandlerTest(t)

		body := bytes.NewReader([]byte(`{"title":`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/notes", body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects invalid tag name", func(t *testing.T) {
		_, router := newHandlerTest(t)

		body := bytes.NewReader([]byte(`{"title":"ok","tags":["bad tag!"]}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/notes", body))

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestNoteHandler_GetHandler(t *testing.T) {
	t.Run("returns decrypted note", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		note, payload := sampleNote()

		useCase.On("GetNote", mock.Anything, note.ID).Return(note, payload, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/notes/"+note.ID.String(), nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Test Note")
	})

	t.Run("missing note returns 404", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		noteID := uuid.Must(uuid.NewV7())

		useCase.On("GetNote", mock.Anything, noteID).Return(nil, nil, notesDomain.ErrNoteNotFound)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/notes/"+noteID.String(), nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("diverged tag index returns integrity error", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		noteID := uuid.Must(uuid.NewV7())

		useCase.On("GetNote", mock.Anything, noteID).Return(nil, nil, notesDomain.ErrTagIndexDivergence)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/notes/"+noteID.String(), nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "integrity_error")
	})

	t.Run("invalid uuid", func(t *testing.T) {
		_, router := newHandlerTest(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/notes/nope", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestNoteHandler_UpdateHandler(t *testing.T) {
	t.Run("updates note", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		note, payload := sampleNote()
		payload.Title = "Renamed"

		useCase.On("UpdateNote", mock.Anything, note.ID, mock.Anything).Return(note, nil)
		useCase.On("GetNote", mock.Anything, note.ID).Return(note, payload, nil)

		body := bytes.NewReader([]byte(`{"title":"Renamed"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/v1/notes/"+note.ID.String(), body))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Renamed")
	})

	t.Run("missing note returns 404", func(t *testing.T) {
		useCase, router := newHandlerTest(t)
		noteID := uuid.Must(uuid.NewV7())

		useCase.On("UpdateNote", mock.Anything, noteID, mock.Anything).Return(nil, notesDomain.ErrNoteNotFound)

		body := bytes.NewReader([]byte(`{"title":"Renamed"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/v1/notes/"+noteID.String(), body))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
