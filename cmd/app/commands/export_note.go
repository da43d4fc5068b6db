package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	exportUseCase "github.com/jamesandrewmyers/memento/internal/export/usecase"
)

// RunExportNote exports a note for the recipient whose PEM public key is
// stored at recipientKeyPath, and prints the archive directory.
func RunExportNote(
	ctx context.Context,
	exporter exportUseCase.UseCase,
	out io.Writer,
	noteIDStr, recipientKeyPath string,
) error {
	noteID, err := uuid.Parse(noteIDStr)
	if err != nil {
		return fmt.Errorf("invalid note ID: %w", err)
	}

	recipientKey, err := os.ReadFile(recipientKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read recipient key: %w", err)
	}

	path, err := exporter.Export(ctx, noteID, recipientKey)
	if err != nil {
		return fmt.Errorf("failed to export note: %w", err)
	}

	fmt.Fprintf(out, "Export written to: %s\n", path)
	return nil
}
