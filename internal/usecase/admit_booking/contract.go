package admit_booking

import (
	"context"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActiveByStudioDate(ctx context.Context, studio domain.Studio, date time.Time) ([]*domain.Booking, error)
}

// PolicyProvider интерфейс поставщика актуальной политики бронирования
// Политика читается заново при каждой попытке бронирования
type PolicyProvider interface {
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *domain.Booking, now time.Time) error
}

// BookingNotifier интерфейс рассылки фактов о бронированиях коллабораторам
// Вызовы fire-and-forget: их исход не влияет на судьбу бронирования
type BookingNotifier interface {
	BookingAdmitted(booking *domain.Booking)
}

// MetricsRecorder счётчики бизнес-метрик бронирований
type MetricsRecorder interface {
	BookingAdmitted(studio string)
	BookingRejected(studio, reason string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
