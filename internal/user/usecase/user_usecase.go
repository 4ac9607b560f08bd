// Package usecase implements the user business logic and orchestrates user
// domain operations against the repository.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/allisson/users/internal/database"
	apperrors "github.com/allisson/users/internal/errors"
	"github.com/allisson/users/internal/user/domain"
	appValidation "github.com/allisson/users/internal/validation"
)

// UserUseCase handles user-related business logic. It holds no per-record
// state; every operation takes a single "today" snapshot and runs to
// completion against the repository.
type UserUseCase struct {
	txManager  database.TxManager
	userRepo   UserRepository
	minimumAge int
}

// NewUserUseCase creates a new UserUseCase. minimumAge is the configured
// minimum whole-year registration age.
func NewUserUseCase(txManager database.TxManager, userRepo UserRepository, minimumAge int) UseCase {
	return &UserUseCase{
		txManager:  txManager,
		userRepo:   userRepo,
		minimumAge: minimumAge,
	}
}

// validateBirthDate checks that a birth date is supplied and not after today.
func (uc *UserUseCase) validateBirthDate(date *domain.Date, today domain.Date) error {
	if date == nil {
		return apperrors.Wrap(domain.ErrInvalidBirthDate, "birth date is required")
	}
	if date.After(today) {
		return apperrors.Wrapf(domain.ErrInvalidBirthDate, "birth date %s is in the future", date)
	}
	return nil
}

// validateAdultAge checks the whole-year age derived from the birth date
// against the configured minimum.
func (uc *UserUseCase) validateAdultAge(date domain.Date, today domain.Date) error {
	if date.YearsUntil(today) < uc.minimumAge {
		return apperrors.Wrapf(
			domain.ErrAgeNotAllowed,
			"registration is allowed only from age %d",
			uc.minimumAge,
		)
	}
	return nil
}

// validateEmailSyntax checks that an email is supplied and structurally valid.
// The missing-email case carries its own message.
func (uc *UserUseCase) validateEmailSyntax(email string) error {
	if email == "" {
		return apperrors.Wrap(domain.ErrEmailNotValid, "email is null or empty")
	}
	if err := validation.Validate(email, appValidation.EmailAddress); err != nil {
		return apperrors.Wrapf(domain.ErrEmailNotValid, "email %q is not a valid address", email)
	}
	return nil
}

// validateEmailTaken issues the single repository lookup of the validation
// chain and fails when the email is already registered.
func (uc *UserUseCase) validateEmailTaken(ctx context.Context, email string) error {
	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Wrapf(domain.ErrEmailTaken, "user with email %s already exists", email)
	}
	return nil
}

// validateDateRange checks the search range ordering.
func (uc *UserUseCase) validateDateRange(from, to domain.Date) error {
	if from.After(to) {
		return apperrors.Wrap(domain.ErrInvalidDateRange, `"from date" must not be after "to date"`)
	}
	return nil
}

// validateUserInput runs the full create-time validation chain over an input:
// birth date before age, email syntax before uniqueness, first failure wins.
func (uc *UserUseCase) validateUserInput(ctx context.Context, input UserInput, today domain.Date) error {
	if err := uc.validateBirthDate(input.BirthDate, today); err != nil {
		return err
	}
	if err := uc.validateAdultAge(*input.BirthDate, today); err != nil {
		return err
	}
	if err := uc.validateEmailSyntax(input.Email); err != nil {
		return err
	}
	return uc.validateEmailTaken(ctx, input.Email)
}

// List returns all users in store order.
func (uc *UserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	return uc.userRepo.GetAll(ctx)
}

// Create validates the input and persists a new user. The repository assigns
// the ID. All required-field invariants are enforced here; the first failing
// rule aborts the operation before anything is written.
func (uc *UserUseCase) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	today := domain.Today()

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := uc.validateUserInput(txCtx, input, today); err != nil {
			return err
		}

		user = &domain.User{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Email:       input.Email,
			BirthDate:   *input.BirthDate,
			Address:     input.Address,
			PhoneNumber: input.PhoneNumber,
		}

		return uc.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FullUpdate replaces every field of an existing user with the input's values.
// The full validation chain runs against the input unconditionally, so an
// absent birth date or email fails exactly as it would on Create.
func (uc *UserUseCase) FullUpdate(ctx context.Context, id int64, input UserInput) (*domain.User, error) {
	today := domain.Today()

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := uc.userRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := uc.validateUserInput(txCtx, input, today); err != nil {
			return err
		}

		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		existing.Email = input.Email
		existing.BirthDate = *input.BirthDate
		existing.Address = input.Address
		existing.PhoneNumber = input.PhoneNumber

		if err := uc.userRepo.Update(txCtx, existing); err != nil {
			return err
		}

		user = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// PartialUpdate overwrites only the fields the patch supplies, validating each
// supplied field with its create-time rules. Fields left nil stay untouched.
// The write happens once, after every supplied field has passed validation.
func (uc *UserUseCase) PartialUpdate(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	today := domain.Today()

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := uc.userRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if patch.FirstName != nil {
			existing.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			existing.LastName = *patch.LastName
		}
		if patch.Email != nil {
			if err := uc.validateEmailSyntax(*patch.Email); err != nil {
				return err
			}
			if err := uc.validateEmailTaken(txCtx, *patch.Email); err != nil {
				return err
			}
			existing.Email = *patch.Email
		}
		if patch.BirthDate != nil {
			if err := uc.validateBirthDate(patch.BirthDate, today); err != nil {
				return err
			}
			if err := uc.validateAdultAge(*patch.BirthDate, today); err != nil {
				return err
			}
			existing.BirthDate = *patch.BirthDate
		}
		if patch.Address != nil {
			existing.Address = *patch.Address
		}
		if patch.PhoneNumber != nil {
			existing.PhoneNumber = *patch.PhoneNumber
		}

		if err := uc.userRepo.Update(txCtx, existing); err != nil {
			return err
		}

		user = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes an existing user. Deleting an id that does not exist fails
// with the not-found error; a repeated delete is not a silent success.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := uc.userRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		return uc.userRepo.Delete(txCtx, id)
	})
}

// SearchByBirthDateRange returns all users whose birth date falls within
// [from, to] inclusive, in store order.
func (uc *UserUseCase) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	if err := uc.validateDateRange(from, to); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByBirthDateBetween(ctx, from, to)
}
