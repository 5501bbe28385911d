package admit_booking

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

// contactPhonePattern телефон клиента: ровно 10 цифр
var contactPhonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// validateRequest валидирует входные данные запроса
// Первый непройденный гейт определяет причину отказа
func validateRequest(req *Request) error {
	if req.Studio == "" {
		return fmt.Errorf("%w: studio is required", ErrInvalidInput)
	}

	if !domain.Studio(req.Studio).IsValid() {
		return fmt.Errorf("%w: unknown studio %q", ErrInvalidInput, req.Studio)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !contactPhonePattern.MatchString(req.ContactPhone) {
		return fmt.Errorf("%w: contactPhone must be exactly %d digits", ErrInvalidInput, domain.ContactPhoneLength)
	}

	if req.RatePerHour != nil {
		rate := *req.RatePerHour
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: ratePerHour must be a finite number", ErrInvalidInput)
		}
		// Отрицательная ставка дала бы отрицательный totalAmount
		if rate < 0 {
			return fmt.Errorf("%w: ratePerHour must not be negative", ErrInvalidInput)
		}
	}

	return nil
}

// validateDuration проверяет, что длительность в границах политики (включительно)
func validateDuration(req *Request, policy *domain.BookingPolicy) (float64, error) {
	duration, err := domain.DurationHours(req.StartTime, req.EndTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if duration < policy.MinDurationHours || duration > policy.MaxDurationHours {
		return 0, fmt.Errorf("%w: %.2fh is not within [%.1fh, %.1fh]",
			ErrDurationOutOfBounds, duration, policy.MinDurationHours, policy.MaxDurationHours)
	}

	return duration, nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
// "Сегодня" считается в календаре бизнеса (now), а не клиента
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	bookingDateOnly := truncateToDay(bookingDate)
	today := truncateToDay(now)

	if bookingDateOnly.Before(today) {
		return ErrInvalidDate
	}

	// Дата ровно на границе горизонта допустима
	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrTooFarInAdvance, advanceBookingDays)
	}

	return nil
}

// validateOpenHours проверяет попадание диапазона в часы работы студии
func validateOpenHours(req *Request, policy *domain.BookingPolicy) error {
	within, err := domain.RangeWithin(req.StartTime, req.EndTime, policy.OpenTime, policy.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !within {
		return fmt.Errorf("%w: studio is open %s-%s", ErrOutsideOpenHours, policy.OpenTime, policy.CloseTime)
	}

	return nil
}

// hasConflict проверяет пересечение кандидата с существующими активными бронированиями
//
// Буфер применяется асимметрично: расширяется только кандидат, существующие
// бронирования сравниваются по их сохранённым границам. Их собственные буферы
// уже были учтены при их приёме, так что буфер применяется ровно один раз
// на каждую пару.
func hasConflict(req *Request, bufferMinutes int, existing []*domain.Booking) (bool, error) {
	candidateStart, err := req.StartTime.ToMinutes()
	if err != nil {
		return false, err
	}
	candidateEnd, err := req.EndTime.ToMinutes()
	if err != nil {
		return false, err
	}

	expandedStart, expandedEnd := domain.ExpandRange(candidateStart, candidateEnd, bufferMinutes)

	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}

		bookingStart, err := booking.StartTime.ToMinutes()
		if err != nil {
			// Некорректное время в хранимой брони не должно пропускать кандидата
			return false, err
		}
		bookingEnd, err := booking.EndTime.ToMinutes()
		if err != nil {
			return false, err
		}

		if domain.Overlaps(expandedStart, expandedEnd, bookingStart, bookingEnd) {
			return true, nil
		}
	}

	return false, nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
