package reminders

import (
	"context"

	"github.com/jamroom/booking-service/internal/domain"
)

// ReminderRepository интерфейс репозитория напоминаний
type ReminderRepository interface {
	CreateBatch(ctx context.Context, reminders []*domain.Reminder) error
	CancelPendingByBookingID(ctx context.Context, bookingID int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
