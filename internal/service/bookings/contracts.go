package bookings

import (
	"context"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPhone(ctx context.Context, phone string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStudioDate(ctx context.Context, studio domain.Studio, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
