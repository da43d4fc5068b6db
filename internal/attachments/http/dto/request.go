// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/jamesandrewmyers/memento/internal/validation"
)

// CreateAttachmentRequest contains the parameters for attaching a file to a
// note. Data carries the file content encoded as standard base64.
type CreateAttachmentRequest struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

// Validate checks if the create attachment request is valid.
func (r *CreateAttachmentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ContentType,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Data,
			validation.Required,
			customValidation.Base64,
		),
	)
}
