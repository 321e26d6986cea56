package get_availability

import (
	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-VisitBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model доступности на дату
// Ключи - сегменты дня, значения - количество свободных мест
type AvailabilityResponse struct {
	Date     string         `json:"date"`
	Segments map[string]int `json:"segments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	segments := make(map[string]int, len(resp.Segments))
	for _, s := range resp.Segments {
		segments[string(s.Segment)] = s.AvailableSlots
	}

	return &AvailabilityResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Segments: segments,
	}
}
