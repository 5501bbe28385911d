package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamroom/booking-service/internal/domain"
	bookingRepo "github.com/jamroom/booking-service/internal/infra/storage/booking"
	"github.com/jamroom/booking-service/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видно только владельцу номера: несовпадение номера
// неотличимо от отсутствия брони
func (s *Service) GetByID(ctx context.Context, id int64, contactPhone string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ContactPhone != contactPhone {
		s.logger.Warn("GetByID: phone mismatch for booking id=%d", id)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetByPhone получает историю бронирований по номеру телефона
// Опционально фильтрует по статусу
func (s *Service) GetByPhone(ctx context.Context, req *models.GetBookingsByPhoneRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetByPhone: fetching bookings, status=%v", req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetByPhone: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByPhone(ctx, req.ContactPhone, domainStatus)
	if err != nil {
		s.logger.Error("GetByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByPhone: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetStudioDay получает расписание студии на дату (для персонала)
func (s *Service) GetStudioDay(ctx context.Context, req *models.GetStudioDayRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudioDay: fetching bookings for studio=%s, date=%s, includeInactive=%v",
		req.Studio, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	studio := domain.Studio(req.Studio)
	if !studio.IsValid() {
		s.logger.Warn("GetStudioDay: unknown studio=%s", req.Studio)
		return nil, fmt.Errorf("%w: unknown studio", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStudioDate(ctx, studio, req.Date, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetStudioDay: repository error for studio=%s: %v", req.Studio, err)
		return nil, fmt.Errorf("%w: GetStudioDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioDay: successfully fetched %d bookings for studio=%s", len(bookings), req.Studio)
	return models.FromDomainBookingList(bookings), nil
}
