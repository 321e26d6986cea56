package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// UseCase use case создания бронирования
//
// Создание не проверяет вместимость: бронирование всегда попадает в статус
// pending, решение о приеме принимает оператор через approve_booking
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute создает бронирование вместе с участниками
// Бронирование и участники вставляются в одной транзакции: бронирование
// без участников не должно быть наблюдаемым ни в какой момент
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, segment=%s, persons=%d",
		req.Date.Format(domain.DateFormat), req.Segment, len(req.Persons))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	persons := make([]*domain.Person, 0, len(req.Persons))
	for _, p := range req.Persons {
		persons = append(persons, &domain.Person{
			Name:            p.Name,
			IdentityNumber:  p.IdentityNumber,
			IdentityDetails: p.IdentityDetails,
		})
	}

	booking := &domain.Booking{
		BookingDate:       req.Date,
		TimeSegment:       req.Segment,
		Status:            domain.StatusPending,
		PrimaryPersonName: req.PrimaryPersonName,
		PrimaryContact:    req.PrimaryContact,
		Persons:           persons,
	}

	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.CreateWithPersons(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, size=%d", result.ID, result.Size)

	return &Response{
		ID:                result.ID,
		Date:              result.BookingDate,
		Segment:           result.TimeSegment,
		Status:            string(result.Status),
		PrimaryPersonName: result.PrimaryPersonName,
		PrimaryContact:    result.PrimaryContact,
		Size:              result.Size,
		CreatedAt:         result.CreatedAt,
	}, nil
}
