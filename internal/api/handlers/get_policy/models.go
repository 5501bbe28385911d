package get_policy

import (
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

// PolicyResponse HTTP response model
type PolicyResponse struct {
	MinDurationHours   float64 `json:"minDurationHours"`
	MaxDurationHours   float64 `json:"maxDurationHours"`
	BufferMinutes      int     `json:"bufferMinutes"`
	AdvanceBookingDays int     `json:"advanceBookingDays"`
	OpenTime           string  `json:"openTime"`  // "08:00"
	CloseTime          string  `json:"closeTime"` // "22:00"
	UpdatedAt          *string `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в HTTP response
func FromDomainPolicy(policy *domain.BookingPolicy) *PolicyResponse {
	resp := &PolicyResponse{
		MinDurationHours:   policy.MinDurationHours,
		MaxDurationHours:   policy.MaxDurationHours,
		BufferMinutes:      policy.BufferMinutes,
		AdvanceBookingDays: policy.AdvanceBookingDays,
		OpenTime:           policy.OpenTime.String(),
		CloseTime:          policy.CloseTime.String(),
	}

	if !policy.UpdatedAt.IsZero() {
		updatedStr := policy.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updatedStr
	}

	return resp
}
