package approve_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitBookingService/pkg/txmanager"
)

// fakeRepo in-memory реализация BookingRepository для тестов
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeRepo{bookings: m}
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) ListByDateSegment(_ context.Context, date time.Time, segment domain.TimeSegment) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var group []*domain.Booking
	for _, b := range r.bookings {
		if b.BookingDate.Equal(date) && b.TimeSegment == segment {
			copied := *b
			group = append(group, &copied)
		}
	}
	return group, nil
}

func (r *fakeRepo) CountApprovedPersons(_ context.Context, date time.Time, segment domain.TimeSegment) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, b := range r.bookings {
		if b.BookingDate.Equal(date) && b.TimeSegment == segment && b.Status == domain.StatusApproved {
			total += b.Size
		}
	}
	return total, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) status(id int64) domain.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

// fakeTxManager выполняет fn напрямую; mutex имитирует сериализуемость -
// конкурентные транзакции выполняются строго по очереди
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// failingTxManager всегда возвращает ошибку сериализации
type failingTxManager struct{}

func (m *failingTxManager) DoSerializable(_ context.Context, _ func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerialization)
}

// fakeNotifier записывает отправленные SMS
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, phone+": "+message)
	return nil
}

func (n *fakeNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
}

func pendingBooking(id int64, size int) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		BookingDate:       testDate(),
		TimeSegment:       domain.SegmentMorning,
		Status:            domain.StatusPending,
		PrimaryPersonName: "Иван Иванов",
		PrimaryContact:    fmt.Sprintf("+7900000000%d", id),
		Size:              size,
	}
}

func pendingBookingAt(id int64, size int, date time.Time, segment domain.TimeSegment) *domain.Booking {
	b := pendingBooking(id, size)
	b.BookingDate = date
	b.TimeSegment = segment
	return b
}

func TestExecute_ApprovesWhenCapacityAvailable(t *testing.T) {
	repo := newFakeRepo(pendingBooking(1, 4))
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, 10, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Admitted)
	assert.Equal(t, ReasonApproved, resp.Reason)
	assert.Equal(t, domain.StatusApproved, repo.status(1))
	require.Len(t, notifier.messages(), 1)
	assert.Contains(t, notifier.messages()[0], "Your booking is confirmed")
}

func TestExecute_RejectsWhenNoSlots(t *testing.T) {
	occupied := pendingBooking(1, 7)
	occupied.Status = domain.StatusApproved

	repo := newFakeRepo(occupied, pendingBooking(2, 4))
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, 10, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 2})

	require.NoError(t, err)
	assert.False(t, resp.Admitted)
	assert.Equal(t, ReasonNoSlots, resp.Reason)
	assert.Equal(t, domain.StatusRejected, repo.status(2))
	require.Len(t, notifier.messages(), 1)
	assert.Contains(t, notifier.messages()[0], "Slots not available")
}

func TestExecute_ApprovesOnExactFit(t *testing.T) {
	occupied := pendingBooking(1, 6)
	occupied.Status = domain.StatusApproved

	repo := newFakeRepo(occupied, pendingBooking(2, 4))
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 2})

	require.NoError(t, err)
	assert.True(t, resp.Admitted)
	assert.Equal(t, domain.StatusApproved, repo.status(2))
}

// Последовательность решений: 4 одобряется, 7 не влезает и отклоняется,
// следующее за ним 6 занимает оставшиеся места
func TestExecute_DecisionSequence(t *testing.T) {
	repo := newFakeRepo(pendingBooking(1, 4), pendingBooking(2, 7), pendingBooking(3, 6))
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{BookingID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Admitted)

	resp, err = uc.Execute(ctx, &Request{BookingID: 2})
	require.NoError(t, err)
	assert.False(t, resp.Admitted)
	assert.Equal(t, ReasonNoSlots, resp.Reason)

	resp, err = uc.Execute(ctx, &Request{BookingID: 3})
	require.NoError(t, err)
	assert.True(t, resp.Admitted)

	assert.Equal(t, domain.StatusApproved, repo.status(1))
	assert.Equal(t, domain.StatusRejected, repo.status(2))
	assert.Equal(t, domain.StatusApproved, repo.status(3))
}

// Решение в группе (date, segment) не затрагивает соседние группы:
// ни другой сегмент той же даты, ни тот же сегмент другой даты
func TestExecute_OtherGroupsUnaffected(t *testing.T) {
	sameDateOtherSegment := pendingBookingAt(2, 5, testDate(), domain.SegmentNoon)
	otherDateSameSegment := pendingBookingAt(3, 6, testDate().AddDate(0, 0, 1), domain.SegmentMorning)

	repo := newFakeRepo(pendingBooking(1, 4), sameDateOtherSegment, otherDateSameSegment)
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{BookingID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Admitted)

	assert.Equal(t, domain.StatusPending, repo.status(2))
	assert.Equal(t, domain.StatusPending, repo.status(3))

	usage, err := repo.CountApprovedPersons(ctx, testDate(), domain.SegmentNoon)
	require.NoError(t, err)
	assert.Equal(t, 0, usage)

	usage, err = repo.CountApprovedPersons(ctx, testDate().AddDate(0, 0, 1), domain.SegmentMorning)
	require.NoError(t, err)
	assert.Equal(t, 0, usage)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Решение по бронированию принимается один раз: повторное одобрение
// не пересматривает статус и не шлет SMS
func TestExecute_NotPendingIsRefusedWithoutSideEffects(t *testing.T) {
	decided := pendingBooking(1, 4)
	decided.Status = domain.StatusApproved

	repo := newFakeRepo(decided)
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, 10, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.False(t, resp.Admitted)
	assert.Equal(t, ReasonNotPending, resp.Reason)
	assert.Equal(t, domain.StatusApproved, repo.status(1))
	assert.Empty(t, notifier.messages())
}

func TestExecute_SerializationFailureMapsToContention(t *testing.T) {
	uc := NewUseCase(newFakeRepo(pendingBooking(1, 4)), &fakeNotifier{}, &failingTxManager{}, 10, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContention)
	assert.NotErrorIs(t, err, ErrBookingNotFound)
}

// Ошибка SMS-шлюза не откатывает принятое решение
func TestExecute_NotifierFailureDoesNotFailDecision(t *testing.T) {
	repo := newFakeRepo(pendingBooking(1, 4))
	notifier := &fakeNotifier{err: fmt.Errorf("gateway unavailable")}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, 10, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Admitted)
	assert.Equal(t, domain.StatusApproved, repo.status(1))
}

// Два конкурентных одобрения по 6 человек в сегменте на 10 мест:
// ровно одно должно пройти, суммарная занятость не превышает вместимость
func TestExecute_ConcurrentApprovalsNeverExceedCapacity(t *testing.T) {
	repo := newFakeRepo(pendingBooking(1, 6), pendingBooking(2, 6))
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, 10, nopLogger{})

	var wg sync.WaitGroup
	results := make([]*Response, 2)
	errs := make([]error, 2)

	for i, id := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), &Request{BookingID: id})
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	admitted := 0
	for _, resp := range results {
		if resp.Admitted {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted)

	usage, err := repo.CountApprovedPersons(context.Background(), testDate(), domain.SegmentMorning)
	require.NoError(t, err)
	assert.LessOrEqual(t, usage, 10)
}
