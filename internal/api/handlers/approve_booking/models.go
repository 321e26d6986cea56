package approve_booking

import approveBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"

// DecisionResponse HTTP response model решения по бронированию
type DecisionResponse struct {
	BookingID int64  `json:"bookingId"`
	Admitted  bool   `json:"admitted"`
	Reason    string `json:"reason"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP response
func FromUseCaseResponse(bookingID int64, resp *approveBooking.Response) *DecisionResponse {
	return &DecisionResponse{
		BookingID: bookingID,
		Admitted:  resp.Admitted,
		Reason:    resp.Reason,
	}
}
