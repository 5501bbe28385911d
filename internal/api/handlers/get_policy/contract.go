package get_policy

import (
	"context"

	"github.com/jamroom/booking-service/internal/domain"
)

type SettingsService interface {
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
