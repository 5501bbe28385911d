package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/pkg/dbmetrics"
	"github.com/jamroom/booking-service/pkg/psqlbuilder"
)

// Настройки хранятся одной строкой с фиксированным id
const policyRowID = 1

// Repository репозиторий для работы с политикой бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicy читает текущую политику бронирования
// Политика изменяема извне, поэтому читается заново при каждом запросе -
// кэширование между запросами недопустимо
func (r *Repository) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"min_duration_hours",
		"max_duration_hours",
		"buffer_minutes",
		"advance_booking_days",
		"open_time",
		"close_time",
		"updated_at",
	).
		From("booking_policy").
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.MinDurationHours,
		&policy.MaxDurationHours,
		&policy.BufferMinutes,
		&policy.AdvanceBookingDays,
		&policy.OpenTime,
		&policy.CloseTime,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %v", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// UpsertPolicy записывает политику бронирования, создавая строку при отсутствии
func (r *Repository) UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policy").
		Columns(
			"id",
			"min_duration_hours",
			"max_duration_hours",
			"buffer_minutes",
			"advance_booking_days",
			"open_time",
			"close_time",
		).
		Values(
			policyRowID,
			policy.MinDurationHours,
			policy.MaxDurationHours,
			policy.BufferMinutes,
			policy.AdvanceBookingDays,
			policy.OpenTime,
			policy.CloseTime,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			min_duration_hours = EXCLUDED.min_duration_hours,
			max_duration_hours = EXCLUDED.max_duration_hours,
			buffer_minutes = EXCLUDED.buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
