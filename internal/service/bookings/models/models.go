package models

import (
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Date    *time.Time `json:"date,omitempty"`    // Фильтр по дате (опционально)
	Segment *string    `json:"segment,omitempty"` // Фильтр по сегменту (опционально)
	Status  *string    `json:"status,omitempty"`  // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Date: r.Date,
	}

	if r.Segment != nil {
		segment, err := domain.ParseTimeSegment(*r.Segment)
		if err != nil {
			return filter, err
		}
		filter.Segment = &segment
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PersonResponse участник бронирования
type PersonResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	IdentityNumber  string  `json:"identityNumber"`
	IdentityDetails *string `json:"identityDetails,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64  `json:"id"`
	BookingDate       string `json:"bookingDate"` // "2025-10-15"
	TimeSegment       string `json:"timeSegment"`
	Status            string `json:"status"`
	PrimaryPersonName string `json:"primaryPersonName"`
	PrimaryContact    string `json:"primaryContact"`
	Size              int    `json:"size"`

	Persons []PersonResponse `json:"persons,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		BookingDate:       b.BookingDate.Format(domain.DateFormat),
		TimeSegment:       string(b.TimeSegment),
		Status:            string(b.Status),
		PrimaryPersonName: b.PrimaryPersonName,
		PrimaryContact:    b.PrimaryContact,
		Size:              b.Size,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	for _, p := range b.Persons {
		resp.Persons = append(resp.Persons, PersonResponse{
			ID:              p.ID,
			Name:            p.Name,
			IdentityNumber:  p.IdentityNumber,
			IdentityDetails: p.IdentityDetails,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}
