package create_booking

import (
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	admitBooking "github.com/jamroom/booking-service/internal/usecase/admit_booking"
	"github.com/jamroom/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Studio      string   `json:"studio"`      // "studio_a"
	BookingDate string   `json:"bookingDate"` // "2025-10-15"
	StartTime   string   `json:"startTime"`   // "10:00"
	EndTime     string   `json:"endTime"`     // "12:00"
	RatePerHour *float64 `json:"ratePerHour,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64    `json:"id"`
	Studio       string   `json:"studio"`
	BookingDate  string   `json:"bookingDate"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Status       string   `json:"status"`
	ContactPhone string   `json:"contactPhone"`
	TotalAmount  *float64 `json:"totalAmount,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(contactPhone string) (*admitBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &admitBooking.Request{
		Studio:       r.Studio,
		Date:         bookingDate,
		StartTime:    startTime,
		EndTime:      endTime,
		ContactPhone: contactPhone,
		RatePerHour:  r.RatePerHour,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *admitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		Studio:       resp.Studio,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ContactPhone: resp.ContactPhone,
		TotalAmount:  resp.TotalAmount,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
