package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	notesUseCase "github.com/jamesandrewmyers/memento/internal/notes/usecase"
)

// RunCreateNote creates a note from the command line and prints its ID.
// Tags are passed comma-separated.
func RunCreateNote(
	ctx context.Context,
	useCase notesUseCase.UseCase,
	out io.Writer,
	title, body, tags string,
	pinned bool,
) error {
	input := notesUseCase.CreateNoteInput{
		Title:  title,
		Body:   body,
		Tags:   splitTags(tags),
		Pinned: pinned,
	}

	note, err := useCase.CreateNote(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	fmt.Fprintf(out, "Note created: %s\n", note.ID)
	return nil
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}

	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
