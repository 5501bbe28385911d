package models

import (
	"errors"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetBookingsByPhoneRequest запрос на получение истории бронирований по номеру
type GetBookingsByPhoneRequest struct {
	ContactPhone string  `json:"contactPhone"`
	Status       *string `json:"status,omitempty"`
}

// GetStudioDayRequest запрос на получение бронирований студии на дату
type GetStudioDayRequest struct {
	Studio          string    `json:"studio"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64    `json:"id"`
	Studio       string   `json:"studio"`
	BookingDate  string   `json:"bookingDate"` // "2025-10-15"
	StartTime    string   `json:"startTime"`   // "10:00"
	EndTime      string   `json:"endTime"`     // "12:00"
	Status       string   `json:"status"`
	ContactPhone string   `json:"contactPhone"`
	TotalAmount  *float64 `json:"totalAmount,omitempty"`

	CancellationReason  *string `json:"cancellationReason,omitempty"`
	CancelledAt         *string `json:"cancelledAt,omitempty"` // ISO 8601
	ExternalCalendarRef *string `json:"externalCalendarRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		Studio:              string(b.Studio),
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		StartTime:           b.StartTime.String(),
		EndTime:             b.EndTime.String(),
		Status:              string(b.Status),
		ContactPhone:        b.ContactPhone,
		TotalAmount:         b.TotalAmount,
		CancellationReason:  b.CancellationReason,
		ExternalCalendarRef: b.ExternalCalendarRef,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
