package settings

import (
	"context"

	"github.com/jamroom/booking-service/internal/domain"
)

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
