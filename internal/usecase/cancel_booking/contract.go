package cancel_booking

import (
	"context"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// ReminderCanceller интерфейс отмены запланированных напоминаний
type ReminderCanceller interface {
	CancelPending(ctx context.Context, bookingID int64) (int64, error)
}

// IdentityClient интерфейс клиента проверки личности
type IdentityClient interface {
	CheckVerified(ctx context.Context, phone string) (*identityservice.Verification, error)
}

// BookingNotifier интерфейс рассылки фактов о бронированиях коллабораторам
type BookingNotifier interface {
	BookingCancelled(booking *domain.Booking)
}

// MetricsRecorder счётчики бизнес-метрик бронирований
type MetricsRecorder interface {
	BookingCancelled(studio string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
