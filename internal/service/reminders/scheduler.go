package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
)

// Scheduler выводит напоминания из принятого бронирования и управляет их отменой
type Scheduler struct {
	reminderRepo ReminderRepository
	logger       Logger
}

// NewScheduler создает новый экземпляр планировщика напоминаний
func NewScheduler(reminderRepo ReminderRepository, logger Logger) *Scheduler {
	return &Scheduler{
		reminderRepo: reminderRepo,
		logger:       logger,
	}
}

// DeriveReminders выводит фиксированный набор напоминаний из бронирования
// Чистая функция: подтверждение в момент now со статусом sent (синхронное
// уведомление уже отправлено), плюс два pending-напоминания за 24 часа и за час
// до начала сессии.
//
// scheduledAt может оказаться в прошлом (бронирование день в день) - это не
// фильтруется намеренно: решение отправить сразу или пропустить принимает
// внешний процесс доставки.
func DeriveReminders(booking *domain.Booking, now time.Time) ([]*domain.Reminder, error) {
	startInstant, err := booking.StartInstant(now.Location())
	if err != nil {
		return nil, fmt.Errorf("reminders: derive - start instant: %w", err)
	}

	return []*domain.Reminder{
		{
			BookingID:   booking.ID,
			ScheduledAt: now,
			Kind:        domain.ReminderConfirmation,
			Status:      domain.ReminderSent,
		},
		{
			BookingID:   booking.ID,
			ScheduledAt: startInstant.Add(-24 * time.Hour),
			Kind:        domain.Reminder24h,
			Status:      domain.ReminderPending,
		},
		{
			BookingID:   booking.ID,
			ScheduledAt: startInstant.Add(-1 * time.Hour),
			Kind:        domain.Reminder1h,
			Status:      domain.ReminderPending,
		},
	}, nil
}

// Schedule создает напоминания для принятого бронирования
// Напоминания - производное состояние: их запись best-effort, ошибка
// не отменяет уже принятое бронирование (логируется вызывающей стороной)
func (s *Scheduler) Schedule(ctx context.Context, booking *domain.Booking, now time.Time) error {
	reminders, err := DeriveReminders(booking, now)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return fmt.Errorf("reminders: schedule booking id=%d: %w", booking.ID, err)
	}

	s.logger.Info("Reminders: scheduled %d reminders for booking id=%d", len(reminders), booking.ID)
	return nil
}

// CancelPending переводит все pending-напоминания бронирования в cancelled
// Идемпотентен: повторный вызов возвращает 0
func (s *Scheduler) CancelPending(ctx context.Context, bookingID int64) (int64, error) {
	count, err := s.reminderRepo.CancelPendingByBookingID(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("reminders: cancel pending for booking id=%d: %w", bookingID, err)
	}

	if count > 0 {
		s.logger.Info("Reminders: cancelled %d pending reminders for booking id=%d", count, bookingID)
	}

	return count, nil
}
