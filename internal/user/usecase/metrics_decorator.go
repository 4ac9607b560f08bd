package usecase

import (
	"context"
	"time"

	"github.com/allisson/users/internal/metrics"
	"github.com/allisson/users/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record registers the operation count and duration with a success/error status.
func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

func (u *userUseCaseWithMetrics) List(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx)
	u.record(ctx, "user_list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "user_create", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) FullUpdate(
	ctx context.Context,
	id int64,
	input UserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.FullUpdate(ctx, id, input)
	u.record(ctx, "user_full_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) PartialUpdate(
	ctx context.Context,
	id int64,
	patch UserPatch,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.PartialUpdate(ctx, id, patch)
	u.record(ctx, "user_partial_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "user_delete", start, err)
	return err
}

func (u *userUseCaseWithMetrics) SearchByBirthDateRange(
	ctx context.Context,
	from, to domain.Date,
) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.SearchByBirthDateRange(ctx, from, to)
	u.record(ctx, "user_search_by_birth_date", start, err)
	return users, err
}
