package bulk_decide_bookings

import (
	"context"

	approveBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"
	rejectBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/reject_booking"
)

// ApproveBookingUseCase интерфейс use case одобрения бронирования
type ApproveBookingUseCase interface {
	Execute(ctx context.Context, req *approveBooking.Request) (*approveBooking.Response, error)
}

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
