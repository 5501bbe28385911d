package update_policy

import (
	"context"

	"github.com/jamroom/booking-service/internal/domain"
)

type SettingsService interface {
	UpdatePolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
