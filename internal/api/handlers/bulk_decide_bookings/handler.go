package bulk_decide_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitBookingService/internal/api/handlers"
	approveBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"
	rejectBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/reject_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие, ожидается approve или reject"
	msgEmptyIDs           = "список bookingIds пуст"
	msgNotFound           = "бронирование не найдено"
	msgContention         = "конфликт конкурентного доступа, повторите запрос"
	msgProcessed          = "пакетное решение выполнено"
)

// Handler пакетные решения оператора
// Тонкая обертка: просто вызывает Approve/Reject для каждого ID по очереди,
// каждая операция - отдельная транзакция со своими гарантиями
type Handler struct {
	approveUC ApproveBookingUseCase
	rejectUC  RejectBookingUseCase
	logger    Logger
}

func NewHandler(approveUC ApproveBookingUseCase, rejectUC RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		approveUC: approveUC,
		rejectUC:  rejectUC,
		logger:    logger,
	}
}

// Handle POST /api/v1/admin/bookings/bulk-decide
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkDecideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/bulk-decide - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Action != ActionApprove && req.Action != ActionReject {
		h.logger.Warn("POST /admin/bookings/bulk-decide - Unknown action: %s", req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if len(req.BookingIDs) == 0 {
		h.logger.Warn("POST /admin/bookings/bulk-decide - Empty booking IDs")
		handlers.RespondBadRequest(w, msgEmptyIDs)
		return
	}

	results := make([]BulkDecideResult, 0, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		results = append(results, h.decide(r, req.Action, id))
	}

	h.logger.Info("POST /admin/bookings/bulk-decide - Processed %d bookings, action=%s",
		len(results), req.Action)
	handlers.RespondJSON(w, http.StatusOK, &BulkDecideResponse{Results: results}, msgProcessed)
}

func (h *Handler) decide(r *http.Request, action string, id int64) BulkDecideResult {
	switch action {
	case ActionApprove:
		resp, err := h.approveUC.Execute(r.Context(), &approveBooking.Request{BookingID: id})
		if err != nil {
			return BulkDecideResult{BookingID: id, Ok: false, Reason: reasonForApproveError(err)}
		}
		return BulkDecideResult{BookingID: id, Ok: resp.Admitted, Reason: resp.Reason}

	default:
		resp, err := h.rejectUC.Execute(r.Context(), &rejectBooking.Request{BookingID: id})
		if err != nil {
			return BulkDecideResult{BookingID: id, Ok: false, Reason: reasonForRejectError(err)}
		}
		return BulkDecideResult{BookingID: id, Ok: resp.Ok, Reason: resp.Reason}
	}
}

func reasonForApproveError(err error) string {
	switch {
	case errors.Is(err, approveBooking.ErrBookingNotFound):
		return msgNotFound
	case errors.Is(err, approveBooking.ErrContention):
		return msgContention
	default:
		return "внутренняя ошибка"
	}
}

func reasonForRejectError(err error) string {
	switch {
	case errors.Is(err, rejectBooking.ErrBookingNotFound):
		return msgNotFound
	case errors.Is(err, rejectBooking.ErrContention):
		return msgContention
	default:
		return "внутренняя ошибка"
	}
}
