package domain

import (
	"time"

	"github.com/jamroom/booking-service/pkg/types"
)

// Studio represents one of the physically distinct bookable rooms
type Studio string

const (
	StudioA Studio = "studio_a"
	StudioB Studio = "studio_b"
	StudioC Studio = "studio_c"
)

// Studios is the fixed set of bookable rooms
var Studios = []Studio{StudioA, StudioB, StudioC}

// IsValid returns true if the studio is one of the known rooms
func (s Studio) IsValid() bool {
	for _, known := range Studios {
		if s == known {
			return true
		}
	}
	return false
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reserved time range in a studio
type Booking struct {
	ID           int64
	Studio       Studio
	BookingDate  time.Time // календарный день, время обнулено
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       BookingStatus
	ContactPhone string // 10 цифр, ключ владельца бронирования

	TotalAmount *float64

	CancellationReason *string
	CancelledAt        *time.Time

	// ExternalCalendarRef идентификатор события во внешнем календаре
	// Принадлежит календарному коллаборатору, для сервиса непрозрачен
	ExternalCalendarRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its time range
// Active bookings participate in conflict checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the session already took place
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// StartInstant returns the instant the session starts in the given location
func (b *Booking) StartInstant(loc *time.Location) (time.Time, error) {
	minutes, err := b.StartTime.ToMinutes()
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := b.BookingDate.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, loc), nil
}
