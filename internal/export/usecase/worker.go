package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// JobResult reports the outcome of one export job.
type JobResult struct {
	// Path is the archive directory, set on success.
	Path string
	// Err is the failure cause, set on failure.
	Err error
}

type job struct {
	noteID       uuid.UUID
	recipientKey []byte
	result       chan JobResult
}

// Worker runs exports off the caller's path. Exports are long operations
// (asymmetric wrap, sealing, file IO); callers submit a job and receive the
// outcome on a per-job channel instead of blocking.
type Worker struct {
	exporter UseCase
	logger   *slog.Logger
	jobs     chan job
}

// NewWorker creates an export worker with the given queue capacity.
func NewWorker(exporter UseCase, queueSize int, logger *slog.Logger) *Worker {
	return &Worker{
		exporter: exporter,
		logger:   logger,
		jobs:     make(chan job, queueSize),
	}
}

// Start runs the worker loop until the context is canceled. An in-flight
// export observes the same context, so cancellation cleans up its staging
// output.
func (w *Worker) Start(ctx context.Context) error {
	if w.logger != nil {
		w.logger.Info("starting export worker", slog.Int("queue_size", cap(w.jobs)))
	}

	for {
		select {
		case <-ctx.Done():
			if w.logger != nil {
				w.logger.Info("stopping export worker")
			}
			return ctx.Err()
		case j := <-w.jobs:
			path, err := w.exporter.Export(ctx, j.noteID, j.recipientKey)
			j.result <- JobResult{Path: path, Err: err}
		}
	}
}

// Submit queues an export job and returns the channel its result will arrive
// on. Returns an error if the queue is full or the context is canceled
// before the job is accepted.
func (w *Worker) Submit(ctx context.Context, noteID uuid.UUID, recipientKey []byte) (<-chan JobResult, error) {
	j := job{
		noteID:       noteID,
		recipientKey: recipientKey,
		result:       make(chan JobResult, 1),
	}

	select {
	case w.jobs <- j:
		return j.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, apperrors.New("export queue is full")
	}
}
