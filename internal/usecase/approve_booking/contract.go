package approve_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByDateSegment(ctx context.Context, date time.Time, segment domain.TimeSegment) ([]*domain.Booking, error)
	CountApprovedPersons(ctx context.Context, date time.Time, segment domain.TimeSegment) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// Notifier интерфейс отправки SMS-уведомлений
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
