package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/jamroom/booking-service/internal/domain"
)

// Routing keys фактов в exchange
const (
	KeyBookingAdmitted  = "booking.admitted"
	KeyBookingCancelled = "booking.cancelled"
)

// BookingEvent факт о бронировании, публикуемый внешним потребителям
// (SMS/WhatsApp-рассыльщик, выгрузка в таблицу, аудит)
// EventID уникален для каждой публикации и позволяет потребителям дедуплицировать
type BookingEvent struct {
	EventID    string          `json:"eventId"`
	Type       string          `json:"type"` // booking.admitted | booking.cancelled
	OccurredAt time.Time       `json:"occurredAt"`
	Booking    BookingSnapshot `json:"booking"`
}

// BookingSnapshot состояние бронирования на момент события
type BookingSnapshot struct {
	ID                 int64    `json:"id"`
	Studio             string   `json:"studio"`
	BookingDate        string   `json:"bookingDate"` // "2025-10-15"
	StartTime          string   `json:"startTime"`   // "10:00"
	EndTime            string   `json:"endTime"`     // "12:00"
	Status             string   `json:"status"`
	ContactPhone       string   `json:"contactPhone"`
	TotalAmount        *float64 `json:"totalAmount,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
}

// newBookingEvent собирает факт из доменной модели
func newBookingEvent(eventType string, booking *domain.Booking, now time.Time) *BookingEvent {
	return &BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: now,
		Booking: BookingSnapshot{
			ID:                 booking.ID,
			Studio:             string(booking.Studio),
			BookingDate:        booking.BookingDate.Format(domain.DateFormat),
			StartTime:          booking.StartTime.String(),
			EndTime:            booking.EndTime.String(),
			Status:             string(booking.Status),
			ContactPhone:       booking.ContactPhone,
			TotalAmount:        booking.TotalAmount,
			CancellationReason: booking.CancellationReason,
		},
	}
}
