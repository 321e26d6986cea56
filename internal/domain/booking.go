package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// TimeSegment represents the part of the day a booking belongs to
type TimeSegment string

const (
	SegmentMorning TimeSegment = "morning"
	SegmentNoon    TimeSegment = "noon"
	SegmentEvening TimeSegment = "evening"
	SegmentNight   TimeSegment = "night"
)

// Booking represents a group visit booking in the system
type Booking struct {
	ID                int64
	BookingDate       time.Time
	TimeSegment       TimeSegment
	Status            BookingStatus
	PrimaryPersonName string
	PrimaryContact    string // Телефон для SMS-уведомлений

	// Size количество человек в бронировании
	// Вычисляется по записям persons, после создания бронирования не меняется
	Size int

	Persons []*Person

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the booking has not been decided yet
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsDecided returns true if the booking has reached a terminal status
func (b *Booking) IsDecided() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}

// IsApproved returns true if the booking has been admitted
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}

// IsRejected returns true if the booking has been rejected
func (b *Booking) IsRejected() bool {
	return b.Status == StatusRejected
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	Date    *time.Time     // Фильтр по дате (опционально)
	Segment *TimeSegment   // Фильтр по сегменту (опционально)
	Status  *BookingStatus // Фильтр по статусу (опционально)
}
