package reminder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/pkg/dbmetrics"
	"github.com/jamroom/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с напоминаниями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория напоминаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает набор напоминаний одним запросом
func (r *Repository) CreateBatch(ctx context.Context, reminders []*domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("reminders").
		Columns("booking_id", "scheduled_at", "kind", "status")

	for _, rem := range reminders {
		insertBuilder = insertBuilder.Values(rem.BookingID, rem.ScheduledAt, rem.Kind, rem.Status)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CancelPendingByBookingID переводит все pending-напоминания бронирования в cancelled
// Возвращает количество затронутых строк. Повторный вызов ничего не меняет
// и возвращает 0
func (r *Repository) CancelPendingByBookingID(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reminders").
		Set("status", domain.ReminderCancelled).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.ReminderPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByBookingID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByBookingID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByBookingID - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetByBookingID получает напоминания бронирования в порядке scheduled_at
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Reminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"scheduled_at",
		"kind",
		"status",
		"created_at",
	).
		From("reminders").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reminders := make([]*domain.Reminder, 0)

	for rows.Next() {
		var rem domain.Reminder
		var createdAt sql.NullTime

		err := rows.Scan(
			&rem.ID,
			&rem.BookingID,
			&rem.ScheduledAt,
			&rem.Kind,
			&rem.Status,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		rem.CreatedAt = createdAt.Time
		reminders = append(reminders, &rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return reminders, nil
}
