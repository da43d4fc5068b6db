package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	attachmentsUseCase "github.com/jamesandrewmyers/memento/internal/attachments/usecase"
)

// RunAddAttachment attaches a local file to an existing note.
func RunAddAttachment(
	ctx context.Context,
	useCase attachmentsUseCase.UseCase,
	out io.Writer,
	noteIDStr, filePath, contentType string,
) error {
	noteID, err := uuid.Parse(noteIDStr)
	if err != nil {
		return fmt.Errorf("invalid note ID: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open attachment file: %w", err)
	}
	defer file.Close()

	attachment, err := useCase.CreateAttachment(ctx, noteID, contentType, file)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	fmt.Fprintf(out, "Attachment created: %s\n", attachment.ID)
	return nil
}
