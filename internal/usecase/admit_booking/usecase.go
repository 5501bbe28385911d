package admit_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jamroom/booking-service/internal/domain"
	storage "github.com/jamroom/booking-service/internal/infra/storage/booking"
)

// UseCase принимает новые бронирования
//
// Все гейты (политика, длительность, дата, часы работы, конфликты) и вставка
// выполняются в одной serializable-транзакции, так что два конкурирующих
// запроса на пересекающиеся слоты не могут пройти одновременно.
type UseCase struct {
	bookingRepo  BookingRepository
	policy       PolicyProvider
	reminders    ReminderScheduler
	notifier     BookingNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	metricsRec   MetricsRecorder
	logger       Logger
}

func New(
	bookingRepo BookingRepository,
	policy PolicyProvider,
	reminders ReminderScheduler,
	notifier BookingNotifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metricsRec MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policy:       policy,
		reminders:    reminders,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		metricsRec:   metricsRec,
		logger:       logger,
	}
}

// Execute проводит запрос через гейты и создаёт бронирование
//
// Порядок гейтов фиксирован: формат -> длительность -> дата -> часы работы ->
// конфликты. Возвращается ошибка первого непройденного гейта.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[AdmitBooking] Execute - studio: %s, date: %s, range: %s-%s",
		req.Studio, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.metricsRec.BookingRejected(req.Studio, rejectionReason(err))
		uc.logger.Warn("[AdmitBooking] Execute - validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Политика читается заново на каждую попытку: смена настроек
		// действует немедленно для всех последующих запросов
		policy, err := uc.policy.GetPolicy(ctx)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to load booking policy: %v", ErrInternal, err)
		}

		duration, err := validateDuration(req, policy)
		if err != nil {
			return err
		}

		if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
			return err
		}

		if err := validateOpenHours(req, policy); err != nil {
			return err
		}

		existing, err := uc.bookingRepo.ListActiveByStudioDate(ctx, domain.Studio(req.Studio), req.Date)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to list active bookings: %v", ErrInternal, err)
		}

		conflict, err := hasConflict(req, policy.BufferMinutes, existing)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to check conflicts: %v", ErrInternal, err)
		}
		if conflict {
			return ErrSlotNotAvailable
		}

		booking := &domain.Booking{
			Studio:       domain.Studio(req.Studio),
			BookingDate:  truncateToDay(req.Date),
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       domain.StatusConfirmed,
			ContactPhone: req.ContactPhone,
			TotalAmount:  calculateTotalAmount(req.RatePerHour, duration),
		}

		created, err = uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			// Exclusion constraint — последняя линия обороны от гонки,
			// которую не поймала проверка выше
			if errors.Is(err, storage.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: Execute - failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			uc.metricsRec.BookingRejected(req.Studio, rejectionReason(err))
			uc.logger.Warn("[AdmitBooking] Execute - rejected: %v", err)
		} else {
			uc.logger.Error("[AdmitBooking] Execute - failed: %v", err)
		}
		return nil, err
	}

	uc.metricsRec.BookingAdmitted(req.Studio)

	// Напоминания создаются после коммита: их сбой не откатывает бронирование
	if err := uc.reminders.Schedule(ctx, created, now); err != nil {
		uc.logger.Error("[AdmitBooking] Execute - failed to schedule reminders for booking %d: %v", created.ID, err)
	}

	uc.notifier.BookingAdmitted(created)

	uc.logger.Info("[AdmitBooking] Execute - admitted booking %d for studio %s on %s",
		created.ID, created.Studio, created.BookingDate.Format(domain.DateFormat))

	return buildResponse(created), nil
}

// calculateTotalAmount считает стоимость: ставка * длительность, округлённая
// до целых рублей. Без ставки стоимость не фиксируется.
func calculateTotalAmount(ratePerHour *float64, durationHours float64) *float64 {
	if ratePerHour == nil {
		return nil
	}

	total := math.Round(*ratePerHour * durationHours)
	return &total
}

// rejectionReason метка причины отказа для метрик
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDurationOutOfBounds):
		return "duration_out_of_bounds"
	case errors.Is(err, ErrInvalidDate):
		return "date_in_past"
	case errors.Is(err, ErrTooFarInAdvance):
		return "too_far_in_advance"
	case errors.Is(err, ErrOutsideOpenHours):
		return "outside_open_hours"
	case errors.Is(err, ErrSlotNotAvailable):
		return "slot_conflict"
	default:
		return "internal"
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDurationOutOfBounds) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrTooFarInAdvance) ||
		errors.Is(err, ErrOutsideOpenHours) ||
		errors.Is(err, ErrSlotNotAvailable)
}

func buildResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:           booking.ID,
		Studio:       string(booking.Studio),
		BookingDate:  booking.BookingDate,
		StartTime:    booking.StartTime,
		EndTime:      booking.EndTime,
		Status:       string(booking.Status),
		ContactPhone: booking.ContactPhone,
		TotalAmount:  booking.TotalAmount,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}
