package domain

import (
	"time"

	"github.com/jamroom/booking-service/pkg/types"
)

// BookingPolicy represents the mutable business rules applied at admission time
// Политика читается заново при каждой попытке бронирования (без кэширования между
// запросами) и не привязывается к уже созданным бронированиям: изменение политики
// задним числом не затрагивает существующие записи
type BookingPolicy struct {
	MinDurationHours   float64
	MaxDurationHours   float64
	BufferMinutes      int
	AdvanceBookingDays int
	OpenTime           types.TimeString
	CloseTime          types.TimeString

	UpdatedAt time.Time
}

// DefaultPolicy returns the documented defaults used when no settings row exists
func DefaultPolicy() *BookingPolicy {
	return &BookingPolicy{
		MinDurationHours:   DefaultMinDurationHours,
		MaxDurationHours:   DefaultMaxDurationHours,
		BufferMinutes:      DefaultBufferMinutes,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		OpenTime:           DefaultOpenTime,
		CloseTime:          DefaultCloseTime,
	}
}
