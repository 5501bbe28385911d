package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
	bookingRepo "github.com/jamroom/booking-service/internal/infra/storage/booking"
	"github.com/jamroom/booking-service/internal/service/bookings/models"
	"github.com/jamroom/booking-service/pkg/ptr"
)

type bookingRepoStub struct {
	booking    *domain.Booking
	list       []*domain.Booking
	lastStatus *domain.BookingStatus
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *bookingRepoStub) GetByPhone(ctx context.Context, phone string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	s.lastStatus = status
	return s.list, nil
}

func (s *bookingRepoStub) GetByStudioDate(ctx context.Context, studio domain.Studio, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	return s.list, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func storedBooking() *domain.Booking {
	return &domain.Booking{
		ID:           3,
		Studio:       domain.StudioC,
		BookingDate:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "12:00",
		Status:       domain.StatusConfirmed,
		ContactPhone: "5551234567",
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(&bookingRepoStub{booking: storedBooking()}, &noopLogger{})

	resp, err := svc.GetByID(context.Background(), 3, "5551234567")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "studio_c", resp.Studio)
	assert.Equal(t, "2024-02-10", resp.BookingDate)
}

func TestGetByID_PhoneMismatchLooksLikeMissing(t *testing.T) {
	svc := NewService(&bookingRepoStub{booking: storedBooking()}, &noopLogger{})

	_, errMismatch := svc.GetByID(context.Background(), 3, "5559999999")
	_, errMissing := svc.GetByID(context.Background(), 999, "5551234567")

	assert.ErrorIs(t, errMismatch, ErrBookingNotFound)
	assert.ErrorIs(t, errMissing, ErrBookingNotFound)
	// Чужое и несуществующее бронирование неотличимы
	assert.Equal(t, errMissing, errMismatch)
}

func TestGetByPhone(t *testing.T) {
	repo := &bookingRepoStub{list: []*domain.Booking{storedBooking()}}
	svc := NewService(repo, &noopLogger{})

	resp, err := svc.GetByPhone(context.Background(), &models.GetBookingsByPhoneRequest{
		ContactPhone: "5551234567",
		Status:       ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
}

func TestGetByPhone_InvalidStatus(t *testing.T) {
	svc := NewService(&bookingRepoStub{}, &noopLogger{})

	_, err := svc.GetByPhone(context.Background(), &models.GetBookingsByPhoneRequest{
		ContactPhone: "5551234567",
		Status:       ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioDay_UnknownStudio(t *testing.T) {
	svc := NewService(&bookingRepoStub{}, &noopLogger{})

	_, err := svc.GetStudioDay(context.Background(), &models.GetStudioDayRequest{
		Studio: "studio_z",
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioDay(t *testing.T) {
	repo := &bookingRepoStub{list: []*domain.Booking{storedBooking()}}
	svc := NewService(repo, &noopLogger{})

	resp, err := svc.GetStudioDay(context.Background(), &models.GetStudioDayRequest{
		Studio: "studio_c",
		Date:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}
