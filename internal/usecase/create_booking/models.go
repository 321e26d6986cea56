package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// PersonInput данные участника при создании бронирования
type PersonInput struct {
	Name            string
	IdentityNumber  string
	IdentityDetails *string
}

// Request модель запроса на создание бронирования
// Состав участников фиксируется при создании и больше не меняется
type Request struct {
	Date              time.Time
	Segment           domain.TimeSegment
	PrimaryPersonName string
	PrimaryContact    string
	Persons           []PersonInput
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	Date              time.Time
	Segment           domain.TimeSegment
	Status            string
	PrimaryPersonName string
	PrimaryContact    string
	Size              int
	CreatedAt         time.Time
}
