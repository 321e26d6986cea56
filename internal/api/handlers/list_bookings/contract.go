package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-VisitBookingService/internal/service/bookings/models"
)

// BookingService интерфейс read-сервиса бронирований
type BookingService interface {
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
