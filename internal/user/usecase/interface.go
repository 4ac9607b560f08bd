package usecase

import (
	"context"

	"github.com/allisson/users/internal/user/domain"
)

// UserInput carries the full set of user fields for Create and FullUpdate.
// BirthDate is a pointer so a missing date can be told apart from a supplied
// one and rejected with the proper failure.
type UserInput struct {
	FirstName   string
	LastName    string
	Email       string
	BirthDate   *domain.Date
	Address     string
	PhoneNumber string
}

// UserPatch carries optional field values for PartialUpdate. A nil field means
// "not supplied, leave the stored value untouched"; a non-nil pointer to an
// empty string is still a supplied value and is written. Clearing a field via
// patch is not supported.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	BirthDate   *domain.Date
	Address     *string
	PhoneNumber *string
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	FullUpdate(ctx context.Context, id int64, input UserInput) (*domain.User, error)
	PartialUpdate(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	SearchByBirthDateRange(ctx context.Context, from, to domain.Date) ([]*domain.User, error)
}

// UserRepository defines the persistence operations the use case depends on.
// Create assigns the user's ID.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByBirthDateBetween(ctx context.Context, from, to domain.Date) ([]*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
