package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
	storage "github.com/jamroom/booking-service/internal/infra/storage/booking"
	"github.com/jamroom/booking-service/internal/integrations/identityservice"
)

type bookingRepoStub struct {
	booking   *domain.Booking
	getErr    error
	cancelErr error
	cancelled bool
	reason    string
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.booking == nil || s.booking.ID != id {
		return nil, storage.ErrBookingNotFound
	}
	out := *s.booking
	return &out, nil
}

func (s *bookingRepoStub) Cancel(ctx context.Context, id int64, reason string) error {
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelled = true
	s.reason = reason
	s.booking.Status = domain.StatusCancelled
	return nil
}

type reminderCancellerStub struct {
	count int64
	err   error
	calls int
}

func (s *reminderCancellerStub) CancelPending(ctx context.Context, bookingID int64) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

type identityClientStub struct {
	err   error
	calls int
}

func (s *identityClientStub) CheckVerified(ctx context.Context, phone string) (*identityservice.Verification, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &identityservice.Verification{Phone: phone, Verified: true, Method: "otp"}, nil
}

type notifierStub struct {
	cancelled []*domain.Booking
}

func (s *notifierStub) BookingCancelled(booking *domain.Booking) {
	s.cancelled = append(s.cancelled, booking)
}

type txManagerStub struct{}

func (s *txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type metricsRecorderStub struct {
	cancelled []string
}

func (s *metricsRecorderStub) BookingCancelled(studio string) {
	s.cancelled = append(s.cancelled, studio)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// Сессия начинается 2024-02-10 в 10:00, "сейчас" — 2024-02-01 10:00
var testNow = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:           7,
		Studio:       domain.StudioA,
		BookingDate:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "12:00",
		Status:       domain.StatusConfirmed,
		ContactPhone: "5551234567",
	}
}

type fixture struct {
	uc        *UseCase
	repo      *bookingRepoStub
	reminders *reminderCancellerStub
	identity  *identityClientStub
	notifier  *notifierStub
}

func newFixture(now time.Time, policy Policy) *fixture {
	repo := &bookingRepoStub{booking: activeBooking()}
	reminders := &reminderCancellerStub{count: 2}
	identity := &identityClientStub{}
	notifier := &notifierStub{}

	uc := New(
		repo,
		reminders,
		identity,
		notifier,
		&txManagerStub{},
		&fixedTimeProvider{now: now},
		policy,
		&metricsRecorderStub{},
		&noopLogger{},
	)

	return &fixture{uc: uc, repo: repo, reminders: reminders, identity: identity, notifier: notifier}
}

func validRequest() *Request {
	return &Request{
		BookingID:    7,
		ContactPhone: "5551234567",
		Reason:       "plans changed",
	}
}

func TestExecute_CancelsBooking(t *testing.T) {
	f := newFixture(testNow, Policy{})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "plans changed", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, testNow, *resp.CancelledAt)
	assert.Equal(t, int64(2), resp.CancelledReminders)

	assert.True(t, f.repo.cancelled)
	assert.Equal(t, "plans changed", f.repo.reason)
	assert.Equal(t, 1, f.identity.calls)
	require.Len(t, f.notifier.cancelled, 1)
}

func TestExecute_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero booking id", func(r *Request) { r.BookingID = 0 }},
		{"negative booking id", func(r *Request) { r.BookingID = -1 }},
		{"short phone", func(r *Request) { r.ContactPhone = "555123456" }},
		{"phone with letters", func(r *Request) { r.ContactPhone = "555123456a" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testNow, Policy{})
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_UnknownBooking(t *testing.T) {
	f := newFixture(testNow, Policy{})

	req := validRequest()
	req.BookingID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ForeignBookingReportedAsNotFound(t *testing.T) {
	f := newFixture(testNow, Policy{})

	req := validRequest()
	req.ContactPhone = "5559999999"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.False(t, f.repo.cancelled)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture(testNow, Policy{})
	f.repo.booking.Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_CompletedBeforePastGate(t *testing.T) {
	// Сессия уже прошла И завершена: причина отказа — завершённость
	past := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(past, Policy{})
	f.repo.booking.Status = domain.StatusCompleted

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCannotCancelCompleted)
}

func TestExecute_AlreadyStarted(t *testing.T) {
	// "Сейчас" ровно в момент начала сессии — отмена уже невозможна
	started := time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC)
	f := newFixture(started, Policy{})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCannotCancelPast)
}

func TestExecute_NoticeWindow(t *testing.T) {
	policy := Policy{RequireNotice: true, NoticeHours: 24}

	// За 23 часа до начала — поздно
	late := time.Date(2024, 2, 9, 11, 0, 0, 0, time.UTC)
	f := newFixture(late, policy)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWithinCancellationWindow)
	assert.Equal(t, 0, f.identity.calls)

	// Ровно за 24 часа — ещё можно
	onTime := time.Date(2024, 2, 9, 10, 0, 0, 0, time.UTC)
	f = newFixture(onTime, policy)

	_, err = f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	// При включённом сроке уведомления личность не проверяется
	assert.Equal(t, 0, f.identity.calls)
}

func TestExecute_IdentityNotVerified(t *testing.T) {
	f := newFixture(testNow, Policy{})
	f.identity.err = identityservice.ErrNotVerified

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrIdentityNotVerified)
	assert.False(t, f.repo.cancelled)
}

func TestExecute_IdentityServiceFailure(t *testing.T) {
	f := newFixture(testNow, Policy{})
	f.identity.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ReminderFailureRollsBack(t *testing.T) {
	f := newFixture(testNow, Policy{})
	f.reminders.err = errors.New("update failed")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.notifier.cancelled)
}

func TestExecute_ZeroRemindersCancelledIsFine(t *testing.T) {
	f := newFixture(testNow, Policy{})
	f.reminders.count = 0

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.CancelledReminders)
}
