package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountApprovedPersonsByDate(ctx context.Context, date time.Time) (map[domain.TimeSegment]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
