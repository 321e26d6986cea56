package approve_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitBookingService/pkg/txmanager"
)

// UseCase use case одобрения бронирования
//
// Инвариант: сумма участников одобренных бронирований группы (date, segment)
// никогда не превышает maxSlots. Решение принимается в сериализуемой
// транзакции под блокировкой всей группы, поэтому конкурентные одобрения
// одного сегмента выполняются строго по очереди в порядке фиксации
// транзакций. Никакой другой политики очередности нет - это осознанный
// выбор простоты
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	maxSlots    int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// maxSlots - вместимость сегмента, фиксируется на старте процесса
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	maxSlots int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		maxSlots:    maxSlots,
		logger:      logger,
	}
}

// Execute выполняет решение по бронированию
//
// Внутри одной сериализуемой транзакции:
//  1. Читаем целевое бронирование; не-pending статус означает, что решение
//     уже принято - возвращаем отказ без побочных эффектов
//  2. Блокируем всю группу (date, segment) через FOR UPDATE; целевое
//     бронирование блокируется вместе с группой, отдельная блокировка
//     его строки не нужна
//  3. Считаем занятость по одобренным бронированиям группы
//  4. Если мест не хватает - бронирование отклоняется, иначе одобряется
//
// SMS отправляется после фиксации транзакции и не откатывает решение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ApproveBooking: booking=%d", req.BookingID)

	var (
		result  *Response
		contact string
		sms     string
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем целевое бронирование
		target, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ApproveBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Решение по бронированию принимается один раз
		if !target.IsPending() {
			uc.logger.Warn("ApproveBooking: booking id=%d is not pending, status=%s",
				req.BookingID, target.Status)
			result = &Response{Admitted: false, Reason: ReasonNotPending}
			return nil
		}

		// 2. Блокируем группу (date, segment) целиком
		group, err := uc.bookingRepo.ListByDateSegment(txCtx, target.BookingDate, target.TimeSegment)
		if err != nil {
			uc.logger.Error("ApproveBooking: failed to lock group date=%s segment=%s: %v",
				target.BookingDate.Format(domain.DateFormat), target.TimeSegment, err)
			return fmt.Errorf("%w: failed to lock booking group: %v", ErrInternal, err)
		}

		// Перечитываем целевое бронирование из заблокированной группы:
		// между шагами 1 и 2 конкурентная транзакция могла успеть его решить
		target = findInGroup(group, req.BookingID)
		if target == nil {
			return ErrBookingNotFound
		}
		if !target.IsPending() {
			uc.logger.Warn("ApproveBooking: booking id=%d decided concurrently, status=%s",
				req.BookingID, target.Status)
			result = &Response{Admitted: false, Reason: ReasonNotPending}
			return nil
		}

		// 3. Занятость по зафиксированному состоянию, блокировка уже удерживается
		currentUsage, err := uc.bookingRepo.CountApprovedPersons(txCtx, target.BookingDate, target.TimeSegment)
		if err != nil {
			uc.logger.Error("ApproveBooking: failed to count usage for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to count current usage: %v", ErrInternal, err)
		}

		// 4. Сравниваем с вместимостью сегмента
		if currentUsage+target.Size > uc.maxSlots {
			uc.logger.Warn("ApproveBooking: no slots for booking id=%d, usage=%d, requested=%d, max=%d",
				req.BookingID, currentUsage, target.Size, uc.maxSlots)

			if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, domain.StatusRejected); err != nil {
				uc.logger.Error("ApproveBooking: failed to reject booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to reject booking: %v", ErrInternal, err)
			}

			result = &Response{Admitted: false, Reason: ReasonNoSlots}
			contact = target.PrimaryContact
			sms = smsNoSlots
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, domain.StatusApproved); err != nil {
			uc.logger.Error("ApproveBooking: failed to approve booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to approve booking: %v", ErrInternal, err)
		}

		uc.logger.Info("ApproveBooking: booking id=%d approved, usage %d -> %d of %d",
			req.BookingID, currentUsage, currentUsage+target.Size, uc.maxSlots)

		result = &Response{Admitted: true, Reason: ReasonApproved}
		contact = target.PrimaryContact
		sms = smsApproved
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("ApproveBooking: contention for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrContention, err)
		}
		return nil, err
	}

	// Уведомление - fire-and-forget: ошибка шлюза логируется и глотается
	if sms != "" {
		if err := uc.notifier.Send(ctx, contact, sms); err != nil {
			uc.logger.Error("ApproveBooking: failed to send SMS for booking id=%d: %v", req.BookingID, err)
		}
	}

	return result, nil
}

// findInGroup ищет бронирование в заблокированной группе по ID
func findInGroup(group []*domain.Booking, id int64) *domain.Booking {
	for _, b := range group {
		if b.ID == id {
			return b
		}
	}
	return nil
}
