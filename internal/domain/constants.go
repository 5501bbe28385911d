package domain

import "github.com/jamroom/booking-service/pkg/types"

// Default booking policy values, used when no settings row exists
const (
	DefaultMinDurationHours   = 1.0
	DefaultMaxDurationHours   = 8.0
	DefaultBufferMinutes      = 0
	DefaultAdvanceBookingDays = 30
)

// Default opening hours
const (
	DefaultOpenTime  types.TimeString = "08:00"
	DefaultCloseTime types.TimeString = "22:00"
)

// Business validation constants
const (
	MinPolicyDurationHours      = 0.5
	MaxPolicyDurationHours      = 12.0
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 180
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	ContactPhoneLength          = 10
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, удерживающих временной диапазон
// Используется при проверке конфликтов: только эти статусы участвуют
// в инварианте непересечения
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, освободивших временной диапазон
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
