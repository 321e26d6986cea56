package reject_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitBookingService/pkg/txmanager"
)

// UseCase use case отклонения бронирования
//
// Отклонение - административная операция: в отличие от одобрения она
// применима и к уже одобренным бронированиям. Блокировка группы не нужна,
// поскольку отклонение не увеличивает занятость и нарушить инвариант
// вместимости не может
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute отклоняет бронирование
// Повторное отклонение идемпотентно: возвращает Ok без нового уведомления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("RejectBooking: booking=%d", req.BookingID)

	var (
		result  *Response
		contact string
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RejectBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsRejected() {
			uc.logger.Info("RejectBooking: booking id=%d already rejected", req.BookingID)
			result = &Response{Ok: true, Reason: ReasonAlreadyRejected}
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, domain.StatusRejected); err != nil {
			uc.logger.Error("RejectBooking: failed to update status for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		uc.logger.Info("RejectBooking: booking id=%d rejected, previous status=%s",
			req.BookingID, booking.Status)

		result = &Response{Ok: true, Reason: ReasonRejected}
		contact = booking.PrimaryContact
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RejectBooking: contention for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrContention, err)
		}
		return nil, err
	}

	// Уведомление отправляется только при фактическом переходе в rejected
	if contact != "" {
		if err := uc.notifier.Send(ctx, contact, smsRejected); err != nil {
			uc.logger.Error("RejectBooking: failed to send SMS for booking id=%d: %v", req.BookingID, err)
		}
	}

	return result, nil
}
