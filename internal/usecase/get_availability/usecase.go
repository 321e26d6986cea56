package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// UseCase use case получения оставшейся вместимости сегментов на дату
//
// Выполняется без блокировок: показание может отставать от конкурентного
// одобрения, это допустимо - ответ носит справочный характер и никогда
// не используется для самого решения о приеме
type UseCase struct {
	bookingRepo BookingRepository
	maxSlots    int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, maxSlots int, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		maxSlots:    maxSlots,
		logger:      logger,
	}
}

// Execute возвращает свободные места по каждому сегменту даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailability: date=%s", req.Date.Format(domain.DateFormat))

	usage, err := uc.bookingRepo.CountApprovedPersonsByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count usage for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to count usage: %v", ErrInternal, err)
	}

	segments := make([]domain.SegmentAvailability, 0, len(domain.Segments))
	for _, segment := range domain.Segments {
		available := uc.maxSlots - usage[segment]
		if available < 0 {
			available = 0
		}

		sa := domain.SegmentAvailability{
			Segment:        segment,
			AvailableSlots: available,
			TotalSlots:     uc.maxSlots,
		}

		if sa.IsFull() {
			uc.logger.Warn("GetAvailability: segment %s on %s is full",
				segment, req.Date.Format(domain.DateFormat))
		}

		segments = append(segments, sa)
	}

	return &Response{
		Date:     req.Date,
		Segments: segments,
	}, nil
}
