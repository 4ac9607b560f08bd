package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/users/internal/database"
	apperrors "github.com/allisson/users/internal/errors"
	"github.com/allisson/users/internal/user/domain"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const mysqlUserColumns = `id, first_name, last_name, email, birth_date, address, phone_number, created_at, updated_at`

// Create inserts a new user and fills in the database-assigned id.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (first_name, last_name, email, birth_date, address, phone_number, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.BirthDate, user.Address, user.PhoneNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrapf(domain.ErrEmailTaken, "user with email %s already exists", user.Email)
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read inserted user id")
	}
	user.ID = id

	// MySQL has no RETURNING clause, read the assigned timestamps back.
	err = querier.QueryRowContext(ctx, `SELECT created_at, updated_at FROM users WHERE id = ?`, id).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to read inserted user timestamps")
	}

	return nil
}

// GetByID retrieves a user by id.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrapf(domain.ErrUserNotFound, "user by id %d not found", id)
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetAll retrieves all users in insertion order.
func (r *MySQLUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users ORDER BY id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	return collectUsers(rows)
}

// GetByBirthDateBetween retrieves users born within [from, to] inclusive.
func (r *MySQLUserRepository) GetByBirthDateBetween(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE birth_date BETWEEN ? AND ? ORDER BY id`

	rows, err := querier.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search users by birth date")
	}
	defer func() { _ = rows.Close() }()

	return collectUsers(rows)
}

// ExistsByEmail reports whether any user has the given email.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check email existence")
	}
	return exists, nil
}

// Update overwrites all mutable fields of an existing user.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET first_name = ?, last_name = ?, email = ?, birth_date = ?,
			      address = ?, phone_number = ?, updated_at = NOW()
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.BirthDate, user.Address, user.PhoneNumber,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrapf(domain.ErrEmailTaken, "user with email %s already exists", user.Email)
		}
		return apperrors.Wrap(err, "failed to update user")
	}
	return nil
}

// Delete removes a user by id. Deleting an absent id is a no-op; callers check
// existence first.
func (r *MySQLUserRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return nil
}
