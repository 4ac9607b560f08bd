// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/users/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// ValidEmailAddress reports whether s is a structurally valid local@domain
// address: exactly one unquoted split point, a non-empty local part, and a
// non-empty domain with no empty labels (no leading/trailing dot, no "..").
func ValidEmailAddress(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t@") {
		return false
	}

	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}

	return true
}

// EmailAddress validates email structure using ValidEmailAddress.
var EmailAddress = validation.NewStringRuleWithError(
	ValidEmailAddress,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
