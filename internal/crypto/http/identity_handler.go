// Package http provides the HTTP handler for vault identity operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoService "github.com/jamesandrewmyers/memento/internal/crypto/service"
	"github.com/jamesandrewmyers/memento/internal/httputil"
)

// IdentityHandler exposes the vault's export identity public key.
type IdentityHandler struct {
	keyManager cryptoService.KeyManager
	logger     *slog.Logger
}

// NewIdentityHandler creates a new identity handler with required dependencies.
func NewIdentityHandler(keyManager cryptoService.KeyManager, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		keyManager: keyManager,
		logger:     logger,
	}
}

// PublicKeyHandler returns the vault's export identity public key in PEM form.
// GET /v1/identity/public-key - Returns 200 OK with the PEM document.
// Generates and persists the identity on first access.
func (h *IdentityHandler) PublicKeyHandler(c *gin.Context) {
	pemData, err := h.keyManager.ExportPublicKeyData(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/x-pem-file", pemData)
}
