package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-VisitBookingService/internal/usecase/create_booking"
)

// PersonRequest участник бронирования в HTTP запросе
type PersonRequest struct {
	Name            string  `json:"name"`
	IdentityNumber  string  `json:"identityNumber"`
	IdentityDetails *string `json:"identityDetails,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingDate       string          `json:"bookingDate"` // YYYY-MM-DD
	TimeSegment       string          `json:"timeSegment"`
	PrimaryPersonName string          `json:"primaryPersonName"`
	PrimaryContact    string          `json:"primaryContact"`
	Persons           []PersonRequest `json:"persons"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	segment, err := domain.ParseTimeSegment(r.TimeSegment)
	if err != nil {
		return nil, err
	}

	persons := make([]createBooking.PersonInput, 0, len(r.Persons))
	for _, p := range r.Persons {
		persons = append(persons, createBooking.PersonInput{
			Name:            p.Name,
			IdentityNumber:  p.IdentityNumber,
			IdentityDetails: p.IdentityDetails,
		})
	}

	return &createBooking.Request{
		Date:              date,
		Segment:           segment,
		PrimaryPersonName: r.PrimaryPersonName,
		PrimaryContact:    r.PrimaryContact,
		Persons:           persons,
	}, nil
}
