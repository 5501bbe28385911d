package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	storage "github.com/jamroom/booking-service/internal/infra/storage/booking"
	"github.com/jamroom/booking-service/internal/integrations/identityservice"
)

// Policy правила отмены, задаются конфигурацией при старте
type Policy struct {
	// RequireNotice если true, отмена возможна не позже, чем за NoticeHours
	// часов до начала. Если false, вместо срока проверяется подтверждённость
	// личности по номеру телефона
	RequireNotice bool
	NoticeHours   int
}

var contactPhonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// UseCase отменяет бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	reminders    ReminderCanceller
	identity     IdentityClient
	notifier     BookingNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       Policy
	metricsRec   MetricsRecorder
	logger       Logger
}

func New(
	bookingRepo BookingRepository,
	reminders ReminderCanceller,
	identity IdentityClient,
	notifier BookingNotifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy Policy,
	metricsRec MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reminders:    reminders,
		identity:     identity,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		policy:       policy,
		metricsRec:   metricsRec,
		logger:       logger,
	}
}

// Execute проводит запрос на отмену через гейты и отменяет бронирование
//
// Порядок гейтов фиксирован: существование/владение -> уже отменено ->
// завершено -> уже началось -> политика отмены. Несуществующее и чужое
// бронирование дают одинаковый ответ, чтобы не раскрывать чужие ID.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[CancelBooking] Execute - booking: %d", req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[CancelBooking] Execute - validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	booking, err := uc.loadOwned(ctx, req)
	if err != nil {
		uc.logger.Warn("[CancelBooking] Execute - booking %d: %v", req.BookingID, err)
		return nil, err
	}

	if err := uc.runGates(ctx, booking, now); err != nil {
		uc.logger.Warn("[CancelBooking] Execute - booking %d rejected: %v", req.BookingID, err)
		return nil, err
	}

	var cancelledReminders int64

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Перечитываем внутри транзакции: между гейтами и коммитом
		// бронирование могло отменить конкурирующее обращение
		current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Execute - failed to reload booking: %v", ErrInternal, err)
		}

		if current.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if err := uc.bookingRepo.Cancel(ctx, req.BookingID, req.Reason); err != nil {
			return fmt.Errorf("%w: Execute - failed to cancel booking: %v", ErrInternal, err)
		}

		cancelledReminders, err = uc.reminders.CancelPending(ctx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to cancel reminders: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			uc.logger.Warn("[CancelBooking] Execute - booking %d rejected: %v", req.BookingID, err)
		} else {
			uc.logger.Error("[CancelBooking] Execute - booking %d failed: %v", req.BookingID, err)
		}
		return nil, err
	}

	booking.Status = domain.StatusCancelled
	if req.Reason != "" {
		booking.CancellationReason = &req.Reason
	}
	booking.CancelledAt = &now

	uc.metricsRec.BookingCancelled(string(booking.Studio))
	uc.notifier.BookingCancelled(booking)

	uc.logger.Info("[CancelBooking] Execute - cancelled booking %d, reminders cancelled: %d",
		req.BookingID, cancelledReminders)

	return buildResponse(booking, cancelledReminders), nil
}

// loadOwned загружает бронирование и проверяет владение по номеру телефона
func (uc *UseCase) loadOwned(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: loadOwned - failed to get booking: %v", ErrInternal, err)
	}

	if booking.ContactPhone != req.ContactPhone {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// runGates проверяет состояние бронирования и политику отмены
// Проверка личности идёт по HTTP и потому выполняется до открытия транзакции
func (uc *UseCase) runGates(ctx context.Context, booking *domain.Booking, now time.Time) error {
	if booking.IsCancelled() {
		return ErrAlreadyCancelled
	}

	// Завершённость проверяется раньше времени начала: для прошедшей
	// завершённой сессии причина отказа — именно завершённость
	if booking.IsCompleted() {
		return ErrCannotCancelCompleted
	}

	start, err := booking.StartInstant(now.Location())
	if err != nil {
		return fmt.Errorf("%w: runGates - failed to resolve start instant: %v", ErrInternal, err)
	}

	if !now.Before(start) {
		return ErrCannotCancelPast
	}

	if uc.policy.RequireNotice {
		notice := time.Duration(uc.policy.NoticeHours) * time.Hour
		if start.Sub(now) < notice {
			return fmt.Errorf("%w: at least %dh notice is required", ErrWithinCancellationWindow, uc.policy.NoticeHours)
		}
		return nil
	}

	if _, err := uc.identity.CheckVerified(ctx, booking.ContactPhone); err != nil {
		if errors.Is(err, identityservice.ErrNotVerified) {
			return ErrIdentityNotVerified
		}
		return fmt.Errorf("%w: runGates - identity check failed: %v", ErrInternal, err)
	}

	return nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if !contactPhonePattern.MatchString(req.ContactPhone) {
		return fmt.Errorf("%w: contactPhone must be exactly %d digits", ErrInvalidInput, domain.ContactPhoneLength)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	return nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAlreadyCancelled) ||
		errors.Is(err, ErrCannotCancelCompleted) ||
		errors.Is(err, ErrCannotCancelPast) ||
		errors.Is(err, ErrWithinCancellationWindow) ||
		errors.Is(err, ErrIdentityNotVerified)
}

func buildResponse(booking *domain.Booking, cancelledReminders int64) *Response {
	return &Response{
		ID:                 booking.ID,
		Studio:             string(booking.Studio),
		BookingDate:        booking.BookingDate,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CancelledReminders: cancelledReminders,
	}
}
