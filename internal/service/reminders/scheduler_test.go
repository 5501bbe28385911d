package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
)

type reminderRepoStub struct {
	created     []*domain.Reminder
	createErr   error
	cancelCount int64
	cancelErr   error
}

func (s *reminderRepoStub) CreateBatch(ctx context.Context, reminders []*domain.Reminder) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, reminders...)
	return nil
}

func (s *reminderRepoStub) CancelPendingByBookingID(ctx context.Context, bookingID int64) (int64, error) {
	if s.cancelErr != nil {
		return 0, s.cancelErr
	}
	count := s.cancelCount
	// Повторный вызов уже ничего не отменяет
	s.cancelCount = 0
	return count, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           42,
		Studio:       domain.StudioB,
		BookingDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "11:00",
		Status:       domain.StatusConfirmed,
		ContactPhone: "5551234567",
	}
}

func TestDeriveReminders(t *testing.T) {
	now := time.Date(2024, 2, 20, 15, 30, 0, 0, time.UTC)

	reminders, err := DeriveReminders(testBooking(), now)
	require.NoError(t, err)
	require.Len(t, reminders, 3)

	confirmation := reminders[0]
	assert.Equal(t, domain.ReminderConfirmation, confirmation.Kind)
	assert.Equal(t, domain.ReminderSent, confirmation.Status)
	assert.Equal(t, now, confirmation.ScheduledAt)

	reminder24h := reminders[1]
	assert.Equal(t, domain.Reminder24h, reminder24h.Kind)
	assert.Equal(t, domain.ReminderPending, reminder24h.Status)
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), reminder24h.ScheduledAt)

	reminder1h := reminders[2]
	assert.Equal(t, domain.Reminder1h, reminder1h.Kind)
	assert.Equal(t, domain.ReminderPending, reminder1h.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), reminder1h.ScheduledAt)

	for _, r := range reminders {
		assert.Equal(t, int64(42), r.BookingID)
	}
}

func TestDeriveReminders_SameDayBooking(t *testing.T) {
	// Бронирование день в день: scheduledAt в прошлом допустим
	now := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	reminders, err := DeriveReminders(testBooking(), now)
	require.NoError(t, err)

	assert.True(t, reminders[1].ScheduledAt.Before(now))
	assert.Equal(t, domain.ReminderPending, reminders[1].Status)
}

func TestDeriveReminders_MalformedStartTime(t *testing.T) {
	booking := testBooking()
	booking.StartTime = "banana"

	_, err := DeriveReminders(booking, time.Now())
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	repo := &reminderRepoStub{}
	scheduler := NewScheduler(repo, &noopLogger{})

	err := scheduler.Schedule(context.Background(), testBooking(), time.Date(2024, 2, 20, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, repo.created, 3)
}

func TestSchedule_RepositoryFailure(t *testing.T) {
	repo := &reminderRepoStub{createErr: errors.New("insert failed")}
	scheduler := NewScheduler(repo, &noopLogger{})

	err := scheduler.Schedule(context.Background(), testBooking(), time.Now())
	assert.Error(t, err)
}

func TestCancelPending_Idempotent(t *testing.T) {
	repo := &reminderRepoStub{cancelCount: 2}
	scheduler := NewScheduler(repo, &noopLogger{})

	count, err := scheduler.CancelPending(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = scheduler.CancelPending(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
