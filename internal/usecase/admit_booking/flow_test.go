package admit_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
	storage "github.com/jamroom/booking-service/internal/infra/storage/booking"
	cancelBooking "github.com/jamroom/booking-service/internal/usecase/cancel_booking"
)

// memoryRepo обслуживает оба use case поверх одной in-memory таблицы
type memoryRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[int64]*domain.Booking), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	out := *booking
	out.ID = r.nextID
	r.nextID++
	r.bookings[out.ID] = &out

	copied := out
	return &copied, nil
}

func (r *memoryRepo) ListActiveByStudioDate(ctx context.Context, studio domain.Studio, date time.Time) ([]*domain.Booking, error) {
	var active []*domain.Booking
	for _, b := range r.bookings {
		if b.Studio == studio && b.BookingDate.Equal(date) && b.IsActive() {
			copied := *b
			active = append(active, &copied)
		}
	}
	return active, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memoryRepo) Cancel(ctx context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	return nil
}

type cancelNotifierStub struct{}

func (s *cancelNotifierStub) BookingCancelled(booking *domain.Booking) {}

type cancelMetricsStub struct{}

func (s *cancelMetricsStub) BookingCancelled(studio string) {}

// Отменённое бронирование освобождает слот для нового
func TestAdmitCancelAdmitFlow(t *testing.T) {
	repo := newMemoryRepo()
	now := &fixedTimeProvider{now: testNow}

	admit := New(
		repo,
		&policyProviderStub{policy: domain.DefaultPolicy()},
		&reminderSchedulerStub{},
		&notifierStub{},
		&txManagerStub{},
		now,
		&metricsRecorderStub{},
		&noopLogger{},
	)

	cancel := cancelBooking.New(
		repo,
		&reminderCancellerStub{},
		nil, // личность не проверяется при действующем сроке уведомления
		&cancelNotifierStub{},
		&txManagerStub{},
		now,
		cancelBooking.Policy{RequireNotice: true, NoticeHours: 24},
		&cancelMetricsStub{},
		&noopLogger{},
	)

	ctx := context.Background()

	// Первое бронирование занимает слот
	first, err := admit.Execute(ctx, validRequest())
	require.NoError(t, err)

	// Тот же слот повторно не принимается
	_, err = admit.Execute(ctx, validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отмена освобождает слот
	_, err = cancel.Execute(ctx, &cancelBooking.Request{
		BookingID:    first.ID,
		ContactPhone: first.ContactPhone,
		Reason:       "changed plans",
	})
	require.NoError(t, err)

	// Теперь слот снова доступен
	second, err := admit.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

type reminderCancellerStub struct{}

func (s *reminderCancellerStub) CancelPending(ctx context.Context, bookingID int64) (int64, error) {
	return 2, nil
}
