// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// CreateExportRequest contains the parameters for exporting a note.
// RecipientPublicKey is a PEM-encoded PKIX RSA public key.
type CreateExportRequest struct {
	RecipientPublicKey string `json:"recipient_public_key"`
}

// Validate checks if the create export request is valid.
func (r *CreateExportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RecipientPublicKey,
			validation.Required,
			customValidation.PEMPublicKey,
		),
	)
}

// CreateExportResponse contains the result of a completed export.
type CreateExportResponse struct {
	ExportID string `json:"export_id"`
	Path     string `json:"path"`
}
