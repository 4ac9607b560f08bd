package dto

import (
	"time"

	"github.com/allisson/users/internal/user/domain"
)

// UserResponse represents the API representation of a user record.
type UserResponse struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	BirthDate   domain.Date `json:"birth_date"`
	Address     string      `json:"address"`
	PhoneNumber string      `json:"phone_number"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
