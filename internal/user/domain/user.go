// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/allisson/users/internal/errors"
)

// User represents a registered person in the system. The ID is assigned by the
// repository at creation time and is immutable afterwards. First name, last name,
// address, and phone number are optional free text; email and birth date are
// required and validated by the use case layer.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	BirthDate   Date
	Address     string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for user operations. Validation failures wrap
// errors.ErrConflict so handlers map them to 409, matching the API contract.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrEmailTaken indicates another user already registered the email.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email is taken")

	// ErrEmailNotValid indicates the email is empty or fails the syntax check.
	ErrEmailNotValid = errors.Wrap(errors.ErrConflict, "email is not valid")

	// ErrInvalidBirthDate indicates the birth date is missing or in the future.
	ErrInvalidBirthDate = errors.Wrap(errors.ErrConflict, "invalid birth date")

	// ErrAgeNotAllowed indicates the user is younger than the registration minimum.
	ErrAgeNotAllowed = errors.Wrap(errors.ErrConflict, "age not allowed")

	// ErrInvalidDateRange indicates a search range with from after to.
	ErrInvalidDateRange = errors.Wrap(errors.ErrConflict, "invalid date range")
)
