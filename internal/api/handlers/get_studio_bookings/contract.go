package get_studio_bookings

import (
	"context"

	"github.com/jamroom/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetStudioDay(ctx context.Context, req *models.GetStudioDayRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
