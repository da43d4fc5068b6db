// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jamesandrewmyers/memento/cmd/app/commands"
	"github.com/jamesandrewmyers/memento/internal/app"
	"github.com/jamesandrewmyers/memento/internal/config"
)

const version = "1.0.0"

// withContainer loads configuration, builds a DI container and hands it to
// fn, cleaning up afterwards.
func withContainer(fn func(container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer func() {
		if err := container.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	return fn(container)
}

func main() {
	cmd := &cli.Command{
		Name:    "memento",
		Usage:   "Encrypted personal note vault",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), "file://migrations/sqlite", cfg.DBPath)
				},
			},
			{
				Name:  "export-public-key",
				Usage: "Print the vault's export identity public key (PEM), generating it on first use",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(func(container *app.Container) error {
						keyManager, err := container.KeyManager()
						if err != nil {
							return err
						}
						return commands.RunExportPublicKey(ctx, keyManager, os.Stdout)
					})
				},
			},
			{
				Name:  "create-note",
				Usage: "Create a new encrypted note",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Note title",
					},
					&cli.StringFlag{
						Name:    "body",
						Aliases: []string{"b"},
						Usage:   "Note body (markdown source)",
					},
					&cli.StringFlag{
						Name:  "tags",
						Usage: "Comma-separated tag list",
					},
					&cli.BoolFlag{
						Name:  "pinned",
						Usage: "Pin the note in listings",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(func(container *app.Container) error {
						useCase, err := container.NoteUseCase()
						if err != nil {
							return err
						}
						return commands.RunCreateNote(
							ctx,
							useCase,
							os.Stdout,
							cmd.String("title"),
							cmd.String("body"),
							cmd.String("tags"),
							cmd.Bool("pinned"),
						)
					})
				},
			},
			{
				Name:  "add-attachment",
				Usage: "Attach a local file to an existing note",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "note-id",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Owning note ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Required: true,
						Usage:    "Path of the file to attach",
					},
					&cli.StringFlag{
						Name:    "content-type",
						Aliases: []string{"c"},
						Value:   "application/octet-stream",
						Usage:   "MIME content type of the file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(func(container *app.Container) error {
						useCase, err := container.AttachmentUseCase()
						if err != nil {
							return err
						}
						return commands.RunAddAttachment(
							ctx,
							useCase,
							os.Stdout,
							cmd.String("note-id"),
							cmd.String("file"),
							cmd.String("content-type"),
						)
					})
				},
			},
			{
				Name:  "export-note",
				Usage: "Export a note and its attachments for a recipient",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "note-id",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Note ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "recipient-key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Path of the recipient's PEM public key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(func(container *app.Container) error {
						exporter, err := container.ExportUseCase()
						if err != nil {
							return err
						}
						return commands.RunExportNote(
							ctx,
							exporter,
							os.Stdout,
							cmd.String("note-id"),
							cmd.String("recipient-key"),
						)
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
