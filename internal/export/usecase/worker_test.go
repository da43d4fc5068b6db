package usecase

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// MockExporter is a mock implementation of UseCase
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, noteID uuid.UUID, recipientPublicKey []byte) (string, error) {
	args := m.Called(ctx, noteID, recipientPublicKey)
	return args.String(0), args.Error(1)
}

func TestWorker_SubmitAndRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	exporter := new(MockExporter)
	noteID := uuid.Must(uuid.NewV7())
	exporter.On("Export", mock.Anything, noteID, []byte("pem")).Return("/exports/abc", nil)

	worker := NewWorker(exporter, 4, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	result, err := worker.Submit(ctx, noteID, []byte("pem"))
	require.NoError(t, err)

	select {
	case res := <-result:
		assert.NoError(t, res.Err)
		assert.Equal(t, "/exports/abc", res.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for export result")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	exporter.AssertExpectations(t)
}

func TestWorker_ReportsFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	exporter := new(MockExporter)
	noteID := uuid.Must(uuid.NewV7())
	exporter.On("Export", mock.Anything, noteID, mock.Anything).Return("", assert.AnError)

	worker := NewWorker(exporter, 4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	result, err := worker.Submit(ctx, noteID, []byte("pem"))
	require.NoError(t, err)

	select {
	case res := <-result:
		assert.ErrorIs(t, res.Err, assert.AnError)
		assert.Empty(t, res.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for export result")
	}

	cancel()
	<-done
}

func TestWorker_QueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	// No Start call, so submitted jobs stay queued.
	worker := NewWorker(new(MockExporter), 1, nil)
	ctx := context.Background()
	noteID := uuid.Must(uuid.NewV7())

	_, err := worker.Submit(ctx, noteID, []byte("pem"))
	require.NoError(t, err)

	_, err = worker.Submit(ctx, noteID, []byte("pem"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}
