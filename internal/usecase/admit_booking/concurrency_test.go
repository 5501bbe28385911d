package admit_booking

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/internal/domain"
	storage "github.com/jamroom/booking-service/internal/infra/storage/booking"
	"github.com/jamroom/booking-service/pkg/types"
)

// exclusionRepo моделирует exclusion constraint БД: вставка пересекающегося
// активного бронирования атомарно отклоняется с ErrSlotTaken.
//
// ListActiveByStudioDate намеренно возвращает пустой список: каждый конкурент
// читает состояние до чужих коммитов, так что проверка пересечений в use case
// ничего не видит и гонку разрешает только ограничение хранилища.
type exclusionRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newExclusionRepo() *exclusionRepo {
	return &exclusionRepo{bookings: make(map[int64]*domain.Booking), nextID: 1}
}

func (r *exclusionRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	start, err := booking.StartTime.ToMinutes()
	if err != nil {
		return nil, err
	}
	end, err := booking.EndTime.ToMinutes()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Studio != booking.Studio || !b.BookingDate.Equal(booking.BookingDate) || !b.IsActive() {
			continue
		}
		bStart, err := b.StartTime.ToMinutes()
		if err != nil {
			return nil, err
		}
		bEnd, err := b.EndTime.ToMinutes()
		if err != nil {
			return nil, err
		}
		if domain.Overlaps(start, end, bStart, bEnd) {
			return nil, storage.ErrSlotTaken
		}
	}

	out := *booking
	out.ID = r.nextID
	r.nextID++
	r.bookings[out.ID] = &out

	copied := out
	return &copied, nil
}

func (r *exclusionRepo) ListActiveByStudioDate(ctx context.Context, studio domain.Studio, date time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *exclusionRepo) active() []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.IsActive() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out
}

// Стабы без состояния: общие стабы из usecase_test пишут в незащищённые
// поля и не годятся для конкурентных вызовов
type fixedPolicyProvider struct {
	policy *domain.BookingPolicy
}

func (p *fixedPolicyProvider) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	return p.policy, nil
}

type noopReminderScheduler struct{}

func (noopReminderScheduler) Schedule(ctx context.Context, booking *domain.Booking, now time.Time) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) BookingAdmitted(booking *domain.Booking) {}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) BookingAdmitted(studio string)         {}
func (noopMetricsRecorder) BookingRejected(studio, reason string) {}

func newConcurrencyUseCase(repo *exclusionRepo) *UseCase {
	return New(
		repo,
		&fixedPolicyProvider{policy: domain.DefaultPolicy()},
		noopReminderScheduler{},
		noopNotifier{},
		&txManagerStub{},
		&fixedTimeProvider{now: testNow},
		noopMetricsRecorder{},
		&noopLogger{},
	)
}

// Гонка за один слот: выигрывает ровно один конкурент, остальные получают
// отказ по занятости
func TestExecute_ConcurrentAdmissionsSingleSlot(t *testing.T) {
	repo := newExclusionRepo()
	uc := newConcurrencyUseCase(repo)

	const workers = 16

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	admitted, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, repo.active(), 1)
}

// Конкуренты со случайными слотами: после любой гонки активные бронирования
// одной студии на одну дату не пересекаются
func TestExecute_ConcurrentAdmissionsKeepSlotsDisjoint(t *testing.T) {
	repo := newExclusionRepo()
	uc := newConcurrencyUseCase(repo)

	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			// Слоты по часовой сетке внутри часов работы, длительностью 1-2 часа
			startMinute := (8 + rng.Intn(12)) * 60
			endMinute := startMinute + (1+rng.Intn(2))*60

			start, err := types.NewTimeStringFromMinutes(startMinute)
			if err != nil {
				t.Errorf("bad start minute %d: %v", startMinute, err)
				return
			}
			end, err := types.NewTimeStringFromMinutes(endMinute)
			if err != nil {
				t.Errorf("bad end minute %d: %v", endMinute, err)
				return
			}

			req := validRequest()
			req.StartTime = start
			req.EndTime = end

			_, execErr := uc.Execute(context.Background(), req)
			if execErr != nil && !errors.Is(execErr, ErrSlotNotAvailable) {
				t.Errorf("unexpected error: %v", execErr)
			}
		}(int64(i))
	}
	wg.Wait()

	active := repo.active()
	require.NotEmpty(t, active)

	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.Studio != b.Studio || !a.BookingDate.Equal(b.BookingDate) {
				continue
			}
			aStart, err := a.StartTime.ToMinutes()
			require.NoError(t, err)
			aEnd, err := a.EndTime.ToMinutes()
			require.NoError(t, err)
			bStart, err := b.StartTime.ToMinutes()
			require.NoError(t, err)
			bEnd, err := b.EndTime.ToMinutes()
			require.NoError(t, err)

			assert.False(t, domain.Overlaps(aStart, aEnd, bStart, bEnd),
				"bookings %d and %d overlap: %s-%s vs %s-%s",
				a.ID, b.ID, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
}
