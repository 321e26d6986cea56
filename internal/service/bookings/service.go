package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitBookingService/internal/service/bookings/models"
)

// Service read-сервис для работы с бронированиями
// Решения по бронированиям принимают usecases approve_booking / reject_booking
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с участниками
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	persons, err := s.bookingRepo.ListPersons(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to fetch persons for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to fetch persons: %v", ErrInternal, err)
	}
	booking.Persons = persons

	s.logger.Info("GetByID: successfully fetched booking id=%d, size=%d", id, booking.Size)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по дате, сегменту и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, date=%v, segment=%v, status=%v", req.Date, req.Segment, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
