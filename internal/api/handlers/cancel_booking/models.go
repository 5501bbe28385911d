package cancel_booking

import (
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	cancelBooking "github.com/jamroom/booking-service/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                 int64   `json:"id"`
	Studio             string  `json:"studio"`
	BookingDate        string  `json:"bookingDate"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:                 resp.ID,
		Studio:             resp.Studio,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledStr
	}

	return out
}
