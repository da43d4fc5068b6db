package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// mockNoteUseCase is a mock implementation of UseCase for decorator tests.
type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *mockNoteUseCase) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, *domain.NotePayload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Note), args.Get(1).(*domain.NotePayload), args.Error(2)
}

func (m *mockNoteUseCase) UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestNoteUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	noteID := uuid.Must(uuid.NewV7())

	t.Run("CreateNote success", func(t *testing.T) {
		mockNext := &mockNoteUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewNoteUseCaseWithMetrics(mockNext, mockMetrics)

		input := CreateNoteInput{Title: "Test Note"}
		note := &domain.Note{ID: noteID}

		mockNext.On("CreateNote", ctx, input).Return(note, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "notes", "note_create", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "notes", "note_create", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		result, err := uc.CreateNote(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, note, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetNote error", func(t *testing.T) {
		mockNext := &mockNoteUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewNoteUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetNote", ctx, noteID).Return(nil, nil, assert.AnError).Once()
		mockMetrics.On("RecordOperation", ctx, "notes", "note_get", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "notes", "note_get", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		_, _, err := uc.GetNote(ctx, noteID)
		assert.ErrorIs(t, err, assert.AnError)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("UpdateNote success", func(t *testing.T) {
		mockNext := &mockNoteUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewNoteUseCaseWithMetrics(mockNext, mockMetrics)

		input := UpdateNoteInput{Title: "Renamed"}
		note := &domain.Note{ID: noteID}

		mockNext.On("UpdateNote", ctx, noteID, input).Return(note, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "notes", "note_update", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "notes", "note_update", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		result, err := uc.UpdateNote(ctx, noteID, input)
		assert.NoError(t, err)
		assert.Equal(t, note, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
