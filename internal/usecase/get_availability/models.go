package get_availability

import (
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	Date time.Time
}

// Response доступность по всем сегментам даты
// Каждый сегмент из domain.Segments присутствует в списке ровно один раз
type Response struct {
	Date     time.Time
	Segments []domain.SegmentAvailability
}
