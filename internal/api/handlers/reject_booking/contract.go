package reject_booking

import (
	"context"

	rejectBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/reject_booking"
)

// RejectBookingUseCase интерфейс use case отклонения бронирования
type RejectBookingUseCase interface {
	Execute(ctx context.Context, req *rejectBooking.Request) (*rejectBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
