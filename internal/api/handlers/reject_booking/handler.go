package reject_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitBookingService/internal/api/handlers"
	rejectBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/reject_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgContention       = "конфликт конкурентного доступа, повторите запрос"
)

// RejectionResponse HTTP response model отклонения бронирования
type RejectionResponse struct {
	BookingID int64  `json:"bookingId"`
	Ok        bool   `json:"ok"`
	Reason    string `json:"reason"`
}

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reject - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectBooking.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reject - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectBooking.ErrContention):
			h.logger.Warn("PATCH /bookings/{id}/reject - Contention: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgContention)

		case errors.Is(err, rejectBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/reject - Failed to reject booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reject - Booking rejected: booking_id=%d, reason=%s",
		bookingID, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, &RejectionResponse{
		BookingID: bookingID,
		Ok:        result.Ok,
		Reason:    result.Reason,
	}, result.Reason)
}
