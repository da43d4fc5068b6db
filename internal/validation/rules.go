// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/pem"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

var (
	// tagNameRegex limits tag names to a portable character set.
	tagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_\-]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// TagName validates that a string is a well-formed tag name: it starts with
// an alphanumeric character and contains only alphanumerics, hyphens and
// underscores.
var TagName = validation.NewStringRuleWithError(
	func(s string) bool {
		return tagNameRegex.MatchString(s)
	},
	validation.NewError("validation_tag_name", "must be a valid tag name"),
)

// PEMPublicKey validates that a string contains a PEM "PUBLIC KEY" block.
var PEMPublicKey = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_pem_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	block, _ := pem.Decode([]byte(s))
	if block == nil || block.Type != "PUBLIC KEY" {
		return validation.NewError("validation_pem_public_key", "must be a PEM-encoded public key")
	}
	return nil
})
