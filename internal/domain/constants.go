package domain

import "fmt"

// DefaultMaxSlotsPerSegment значение вместимости сегмента по умолчанию
// Реальное значение задается в конфигурации и передается в usecases при создании
const DefaultMaxSlotsPerSegment = 10

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Segments фиксированный порядок сегментов дня
// Используется при формировании ответа о доступности, чтобы каждый сегмент
// всегда присутствовал в ответе
var Segments = []TimeSegment{
	SegmentMorning,
	SegmentNoon,
	SegmentEvening,
	SegmentNight,
}

// ParseTimeSegment парсит сегмент дня из строки
func ParseTimeSegment(s string) (TimeSegment, error) {
	switch TimeSegment(s) {
	case SegmentMorning, SegmentNoon, SegmentEvening, SegmentNight:
		return TimeSegment(s), nil
	default:
		return "", fmt.Errorf("unknown time segment: %q", s)
	}
}

// ParseBookingStatus парсит статус бронирования из строки
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}
