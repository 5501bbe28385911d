package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
	settingsRepo "github.com/jamroom/booking-service/internal/infra/storage/settings"
)

type policyRepoStub struct {
	policy    *domain.BookingPolicy
	getErr    error
	upsertErr error
	upserted  *domain.BookingPolicy
}

func (s *policyRepoStub) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.policy, nil
}

func (s *policyRepoStub) UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upserted = policy
	return policy, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func TestGetPolicy_ReturnsStoredPolicy(t *testing.T) {
	stored := &domain.BookingPolicy{
		MinDurationHours:   2.0,
		MaxDurationHours:   6.0,
		BufferMinutes:      30,
		AdvanceBookingDays: 14,
		OpenTime:           "09:00",
		CloseTime:          "21:00",
	}
	svc := NewService(&policyRepoStub{policy: stored}, &noopLogger{})

	got, err := svc.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestGetPolicy_DefaultsWhenMissing(t *testing.T) {
	// Отсутствие строки настроек не ошибка
	svc := NewService(&policyRepoStub{getErr: settingsRepo.ErrPolicyNotFound}, &noopLogger{})

	got, err := svc.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy(), got)
}

func TestGetPolicy_RepositoryFailure(t *testing.T) {
	svc := NewService(&policyRepoStub{getErr: errors.New("connection refused")}, &noopLogger{})

	_, err := svc.GetPolicy(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func validPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		MinDurationHours:   1.0,
		MaxDurationHours:   8.0,
		BufferMinutes:      15,
		AdvanceBookingDays: 30,
		OpenTime:           "08:00",
		CloseTime:          "22:00",
	}
}

func TestUpdatePolicy(t *testing.T) {
	repo := &policyRepoStub{}
	svc := NewService(repo, &noopLogger{})

	updated, err := svc.UpdatePolicy(context.Background(), validPolicy())
	require.NoError(t, err)
	assert.NotNil(t, updated)
	assert.NotNil(t, repo.upserted)
}

func TestUpdatePolicy_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.BookingPolicy)
	}{
		{"min below bound", func(p *domain.BookingPolicy) { p.MinDurationHours = 0.25 }},
		{"max above bound", func(p *domain.BookingPolicy) { p.MaxDurationHours = 13.0 }},
		{"max below min", func(p *domain.BookingPolicy) { p.MaxDurationHours = 0.5 }},
		{"negative buffer", func(p *domain.BookingPolicy) { p.BufferMinutes = -1 }},
		{"buffer above bound", func(p *domain.BookingPolicy) { p.BufferMinutes = 181 }},
		{"advance above bound", func(p *domain.BookingPolicy) { p.AdvanceBookingDays = 366 }},
		{"malformed open time", func(p *domain.BookingPolicy) { p.OpenTime = "8am" }},
		{"open equals close", func(p *domain.BookingPolicy) { p.OpenTime = "22:00" }},
		{"open after close", func(p *domain.BookingPolicy) { p.OpenTime = "23:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &policyRepoStub{}
			svc := NewService(repo, &noopLogger{})

			policy := validPolicy()
			tt.mutate(policy)

			_, err := svc.UpdatePolicy(context.Background(), policy)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.upserted)
		})
	}
}
