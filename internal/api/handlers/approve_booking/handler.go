package approve_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitBookingService/internal/api/handlers"
	approveBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgContention       = "конфликт конкурентного доступа, повторите запрос"
)

type Handler struct {
	useCase ApproveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ApproveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/approve
//
// Бизнес-отказы (не-pending, нехватка мест) возвращаются как 200 OK
// с admitted=false: вызывающая сторона смотрит на результат, а не на код.
// Ошибками считаются только NotFound и конфликт конкурентного доступа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveBooking.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, approveBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveBooking.ErrContention):
			h.logger.Warn("PATCH /bookings/{id}/approve - Contention: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgContention)

		case errors.Is(err, approveBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/approve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/approve - Failed to approve booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/approve - Decision made: booking_id=%d, admitted=%t, reason=%s",
		bookingID, result.Admitted, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(bookingID, result), result.Reason)
}
