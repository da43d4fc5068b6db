package commands

import (
	"context"
	"fmt"
	"io"

	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
)

// RunExportPublicKey prints the vault's export identity public key in PEM
// form. The identity is generated and persisted on first use.
func RunExportPublicKey(ctx context.Context, keyManager cryptoService.KeyManager, out io.Writer) error {
	pemData, err := keyManager.ExportPublicKeyData(ctx)
	if err != nil {
		return fmt.Errorf("failed to export public key: %w", err)
	}

	if _, err := out.Write(pemData); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}
