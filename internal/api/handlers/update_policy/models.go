package update_policy

import (
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/pkg/types"
)

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	MinDurationHours   float64 `json:"minDurationHours"`
	MaxDurationHours   float64 `json:"maxDurationHours"`
	BufferMinutes      int     `json:"bufferMinutes"`
	AdvanceBookingDays int     `json:"advanceBookingDays"`
	OpenTime           string  `json:"openTime"`  // "08:00"
	CloseTime          string  `json:"closeTime"` // "22:00"
}

// PolicyResponse HTTP response model
type PolicyResponse struct {
	MinDurationHours   float64 `json:"minDurationHours"`
	MaxDurationHours   float64 `json:"maxDurationHours"`
	BufferMinutes      int     `json:"bufferMinutes"`
	AdvanceBookingDays int     `json:"advanceBookingDays"`
	OpenTime           string  `json:"openTime"`
	CloseTime          string  `json:"closeTime"`
	UpdatedAt          string  `json:"updatedAt"` // ISO 8601
}

// ToDomainPolicy конвертирует HTTP запрос в domain модель
func (r *UpdatePolicyRequest) ToDomainPolicy() (*domain.BookingPolicy, error) {
	openTime, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, err
	}

	return &domain.BookingPolicy{
		MinDurationHours:   r.MinDurationHours,
		MaxDurationHours:   r.MaxDurationHours,
		BufferMinutes:      r.BufferMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
		OpenTime:           openTime,
		CloseTime:          closeTime,
	}, nil
}

// FromDomainPolicy конвертирует domain модель в HTTP response
func FromDomainPolicy(policy *domain.BookingPolicy) *PolicyResponse {
	return &PolicyResponse{
		MinDurationHours:   policy.MinDurationHours,
		MaxDurationHours:   policy.MaxDurationHours,
		BufferMinutes:      policy.BufferMinutes,
		AdvanceBookingDays: policy.AdvanceBookingDays,
		OpenTime:           policy.OpenTime.String(),
		CloseTime:          policy.CloseTime.String(),
		UpdatedAt:          policy.UpdatedAt.Format(time.RFC3339),
	}
}
