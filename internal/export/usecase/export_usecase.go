// Package usecase implements the hybrid-encryption export protocol: decrypt
// locally, bundle, seal under a fresh ephemeral key, wrap that key for the
// recipient and emit a three-member archive.
package usecase

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	attachmentsDomain "github.com/jamesandrewmyers/memento/internal/attachments/domain"
	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
	"github.com/jamesandrewmyers/memento/internal/export/domain"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
	"github.com/jamesandrewmyers/memento/internal/reporting"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

// UseCase defines the interface for export business logic operations.
type UseCase interface {
	Export(ctx context.Context, noteID uuid.UUID, recipientPublicKey []byte) (string, error)
}

// NoteRepository is the note persistence slice the export flow reads from.
type NoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*notesDomain.Note, error)
}

// AttachmentRepository is the attachment persistence slice the export flow
// reads from.
type AttachmentRepository interface {
	ListByNote(ctx context.Context, noteID uuid.UUID) ([]*attachmentsDomain.Attachment, error)
}

// ExportUseCase orchestrates note exports. It is stateless across calls;
// every export owns a fresh ephemeral key and a fresh output directory, so
// concurrent exports never share mutable state.
type ExportUseCase struct {
	noteRepo        NoteRepository
	attachmentRepo  AttachmentRepository
	keyManager      cryptoService.KeyManager
	contentEnvelope cryptoService.Envelope
	exportEnvelope  cryptoService.Envelope
	keyWrapper      cryptoService.KeyWrapper
	keyProvider     cryptoService.KeyProvider
	reporter        reporting.Reporter
	exportDir       string
}

// NewExportUseCase creates a new ExportUseCase. contentEnvelope opens data
// sealed at rest; exportEnvelope always seals with AES-256-GCM regardless of
// the configured at-rest algorithm, because the archive format names that
// cipher.
func NewExportUseCase(
	noteRepo NoteRepository,
	attachmentRepo AttachmentRepository,
	keyManager cryptoService.KeyManager,
	contentEnvelope cryptoService.Envelope,
	exportEnvelope cryptoService.Envelope,
	keyWrapper cryptoService.KeyWrapper,
	keyProvider cryptoService.KeyProvider,
	reporter reporting.Reporter,
	exportDir string,
) *ExportUseCase {
	return &ExportUseCase{
		noteRepo:        noteRepo,
		attachmentRepo:  attachmentRepo,
		keyManager:      keyManager,
		contentEnvelope: contentEnvelope,
		exportEnvelope:  exportEnvelope,
		keyWrapper:      keyWrapper,
		keyProvider:     keyProvider,
		reporter:        reporter,
		exportDir:       exportDir,
	}
}

// Export packages one note and its attachments for the recipient and returns
// the archive directory path.
//
// Two exports of the same note always differ in export.enc and key.enc: the
// ephemeral key and the frame nonce are fresh per call, so exports cannot be
// linked by ciphertext comparison.
func (uc *ExportUseCase) Export(ctx context.Context, noteID uuid.UUID, recipientPublicKey []byte) (string, error) {
	path, err := uc.export(ctx, noteID, recipientPublicKey)
	if err != nil {
		uc.reporter.ReportError(ctx, "export", err)
		return "", err
	}
	return path, nil
}

func (uc *ExportUseCase) export(ctx context.Context, noteID uuid.UUID, recipientPublicKey []byte) (string, error) {
	// Parse the recipient key up front so a malformed key aborts the export
	// before anything touches the filesystem.
	recipient, err := uc.keyWrapper.ParsePublicKey(recipientPublicKey)
	if err != nil {
		return "", err
	}

	bundle, err := uc.assembleBundle(ctx, noteID)
	if err != nil {
		return "", err
	}

	plaintext, err := bundle.Encode()
	if err != nil {
		return "", err
	}

	// The ephemeral key is never the note's content key and is never
	// persisted; the recipient learns nothing about locally stored keys.
	ephemeral, err := uc.keyProvider.ContentKey()
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(ephemeral)

	sealed, err := uc.exportEnvelope.Seal(plaintext, ephemeral)
	if err != nil {
		return "", err
	}

	wrapped, err := uc.keyWrapper.Wrap(ephemeral, recipient)
	if err != nil {
		return "", err
	}

	manifest := uc.buildManifest(noteID, bundle, sealed)
	manifestData, err := manifest.Encode()
	if err != nil {
		return "", err
	}

	return uc.writeArchive(ctx, manifestData, sealed, wrapped)
}

// assembleBundle decrypts the note payload and all attachments. Attachment
// decryption runs in parallel; results keep the stored order.
func (uc *ExportUseCase) assembleBundle(ctx context.Context, noteID uuid.UUID) (*domain.Bundle, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	key, err := uc.keyManager.ContentKey(ctx, noteID)
	if err != nil {
		return nil, err
	}

	payload, err := uc.contentEnvelope.OpenPayload(note.EncryptedData, key)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, err.Error())
	}

	attachments, err := uc.attachmentRepo.ListByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	bundleAttachments := make([]domain.BundleAttachment, len(attachments))
	g, gctx := errgroup.WithContext(ctx)
	for i, attachment := range attachments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := uc.contentEnvelope.Open(attachment.EncryptedData, key)
			if err != nil {
				return apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, err.Error())
			}
			bundleAttachments[i] = domain.BundleAttachment{
				ID:          attachment.ID.String(),
				ContentType: attachment.ContentType,
				Data:        data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Bundle{
		Payload:     payload,
		Attachments: bundleAttachments,
	}, nil
}

// buildManifest mirrors the payload metadata and lifts the frame parameters
// out of the sealed bundle.
func (uc *ExportUseCase) buildManifest(noteID uuid.UUID, bundle *domain.Bundle, sealed []byte) *domain.Manifest {
	payload := bundle.Payload
	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Manifest{
		Version:   domain.ManifestVersion,
		NoteID:    noteID.String(),
		Title:     payload.Title,
		Tags:      tags,
		CreatedAt: payload.CreatedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
		UpdatedAt: payload.UpdatedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
		Pinned:    payload.Pinned,
		Crypto: domain.CryptoParams{
			Cipher:  cryptoDomain.CipherNameAESGCM,
			KeyWrap: string(cryptoDomain.RSAOAEPSHA256),
			Nonce:   base64.StdEncoding.EncodeToString(cryptoService.FrameNonce(sealed)),
			Tag:     base64.StdEncoding.EncodeToString(cryptoService.FrameTag(sealed)),
		},
	}
}

// writeArchive writes the three members into a hidden staging directory and
// renames it into place. Any failure or cancellation removes the staging
// directory, so a partial archive never becomes visible.
func (uc *ExportUseCase) writeArchive(ctx context.Context, manifest, sealed, wrapped []byte) (string, error) {
	exportID, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uc.exportDir, 0o700); err != nil {
		return "", apperrors.Wrap(err, "failed to create export directory")
	}

	staging := filepath.Join(uc.exportDir, "."+exportID.String()+".staging")
	if err := os.Mkdir(staging, 0o700); err != nil {
		return "", apperrors.Wrap(err, "failed to create staging directory")
	}

	cleanup := func() { _ = os.RemoveAll(staging) }

	members := []struct {
		name string
		data []byte
	}{
		{domain.ManifestFileName, manifest},
		{domain.BundleFileName, sealed},
		{domain.KeyFileName, wrapped},
	}
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			cleanup()
			return "", err
		}
		if err := os.WriteFile(filepath.Join(staging, member.name), member.data, 0o600); err != nil {
			cleanup()
			return "", apperrors.Wrap(err, "failed to write archive member")
		}
	}

	if err := ctx.Err(); err != nil {
		cleanup()
		return "", err
	}

	final := filepath.Join(uc.exportDir, exportID.String())
	if err := os.Rename(staging, final); err != nil {
		cleanup()
		return "", apperrors.Wrap(err, "failed to finalize archive")
	}

	return final, nil
}
