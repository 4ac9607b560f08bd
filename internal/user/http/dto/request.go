// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/users/internal/user/domain"
)

// UserRequest represents the API request body for creating or updating a user.
// All fields are pointers so PATCH can tell an absent field from a supplied
// one; for POST and PUT the mapper treats absent strings as empty. Field-level
// business rules (email syntax and uniqueness, birth date, age) are enforced
// by the use case, not here.
type UserRequest struct {
	FirstName   *string      `json:"first_name"`
	LastName    *string      `json:"last_name"`
	Email       *string      `json:"email"`
	BirthDate   *domain.Date `json:"birth_date"`
	Address     *string      `json:"address"`
	PhoneNumber *string      `json:"phone_number"`
}

// Validate checks request shape only: bounded field lengths. Violations map to
// 400, unlike business-rule failures which the use case reports as conflicts.
func (r *UserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName, validation.Length(0, 255).Error("first_name must be at most 255 characters")),
		validation.Field(&r.LastName, validation.Length(0, 255).Error("last_name must be at most 255 characters")),
		validation.Field(&r.Email, validation.Length(0, 255).Error("email must be at most 255 characters")),
		validation.Field(&r.Address, validation.Length(0, 500).Error("address must be at most 500 characters")),
		validation.Field(&r.PhoneNumber, validation.Length(0, 50).Error("phone_number must be at most 50 characters")),
	)
}
