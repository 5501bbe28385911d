package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamroom/booking-service/internal/domain"
	settingsRepo "github.com/jamroom/booking-service/internal/infra/storage/settings"
)

// Service предоставляет актуальную политику бронирования
// Политика изменяема персоналом и читается заново при каждом обращении:
// сервис не кэширует её между запросами
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// GetPolicy возвращает текущую политику бронирования
// Отсутствие строки настроек не является ошибкой: возвращаются
// документированные значения по умолчанию
func (s *Service) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	policy, err := s.policyRepo.GetPolicy(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrPolicyNotFound) {
			s.logger.Info("GetPolicy: no policy row, using defaults")
			return domain.DefaultPolicy(), nil
		}
		s.logger.Error("GetPolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
	}

	return policy, nil
}

// UpdatePolicy валидирует и сохраняет новую политику бронирования
// Изменение политики не затрагивает уже принятые бронирования
func (s *Service) UpdatePolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	s.logger.Info("UpdatePolicy: min=%.1fh max=%.1fh buffer=%dm advance=%dd open=%s close=%s",
		policy.MinDurationHours, policy.MaxDurationHours, policy.BufferMinutes,
		policy.AdvanceBookingDays, policy.OpenTime, policy.CloseTime)

	if err := validatePolicy(policy); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.policyRepo.UpsertPolicy(ctx, policy)
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: policy updated")
	return updated, nil
}

// validatePolicy проверяет согласованность полей политики
func validatePolicy(policy *domain.BookingPolicy) error {
	if policy.MinDurationHours < domain.MinPolicyDurationHours || policy.MinDurationHours > domain.MaxPolicyDurationHours {
		return fmt.Errorf("%w: minDurationHours must be in [%.1f, %.1f]",
			ErrInvalidInput, domain.MinPolicyDurationHours, domain.MaxPolicyDurationHours)
	}

	if policy.MaxDurationHours < policy.MinDurationHours || policy.MaxDurationHours > domain.MaxPolicyDurationHours {
		return fmt.Errorf("%w: maxDurationHours must be in [minDurationHours, %.1f]",
			ErrInvalidInput, domain.MaxPolicyDurationHours)
	}

	if policy.BufferMinutes < domain.MinBufferMinutes || policy.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if policy.AdvanceBookingDays < domain.MinAdvanceBookingDays || policy.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be in [%d, %d]",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if err := policy.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	if err := policy.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	if !policy.OpenTime.IsBefore(policy.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	return nil
}
