package reject_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitBookingService/pkg/txmanager"
)

type fakeRepo struct {
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
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failingTxManager struct{}

func (failingTxManager) Do(_ context.Context, _ func(ctx context.Context) error) error {
	return fmt.Errorf("%w: deadlock detected", txmanager.ErrSerialization)
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, phone, message string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, phone+": "+message)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		BookingDate:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		TimeSegment:       domain.SegmentEvening,
		Status:            status,
		PrimaryPersonName: "Петр Петров",
		PrimaryContact:    "+79001234567",
		Size:              3,
	}
}

func TestExecute_RejectsPendingBooking(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusPending))
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, ReasonRejected, resp.Reason)
	assert.Equal(t, domain.StatusRejected, repo.bookings[1].Status)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Your booking has been rejected")
}

// Отклонение применимо и к уже одобренному бронированию - это
// административный override, освобождающий места
func TestExecute_RejectsApprovedBooking(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusApproved))
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, ReasonRejected, resp.Reason)
	assert.Equal(t, domain.StatusRejected, repo.bookings[1].Status)
	assert.Len(t, notifier.sent, 1)
}

// Повторное отклонение идемпотентно: Ok без нового SMS
func TestExecute_AlreadyRejectedIsIdempotent(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusRejected))
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, ReasonAlreadyRejected, resp.Reason)
	assert.Empty(t, notifier.sent)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), &fakeNotifier{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: -1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SerializationFailureMapsToContention(t *testing.T) {
	uc := NewUseCase(newFakeRepo(booking(1, domain.StatusPending)), &fakeNotifier{}, failingTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContention)
}

func TestExecute_NotifierFailureDoesNotFailRejection(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusPending))
	notifier := &fakeNotifier{err: fmt.Errorf("gateway unavailable")}
	uc := NewUseCase(repo, notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, domain.StatusRejected, repo.bookings[1].Status)
}
