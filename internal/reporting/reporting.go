// Package reporting funnels operational failures to one place instead of
// letting each component log ad hoc.
package reporting

import (
	"context"
	"log/slog"
)

// Reporter receives failures from the vault's components.
type Reporter interface {
	// ReportError records a failed operation with its cause.
	ReportError(ctx context.Context, operation string, err error)
}

// SlogReporter reports failures through a structured logger.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a Reporter backed by the given logger.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	return &SlogReporter{logger: logger}
}

// ReportError logs the failure with the operation name attached.
func (r *SlogReporter) ReportError(ctx context.Context, operation string, err error) {
	if err == nil {
		return
	}
	r.logger.ErrorContext(ctx, "operation failed",
		slog.String("operation", operation),
		slog.Any("error", err),
	)
}

// NopReporter discards all reports. Used in tests.
type NopReporter struct{}

// ReportError does nothing.
func (NopReporter) ReportError(ctx context.Context, operation string, err error) {}
