package domain

// SegmentAvailability represents remaining capacity for one segment of a date
type SegmentAvailability struct {
	Segment        TimeSegment
	AvailableSlots int // Свободные места
	TotalSlots     int // Вместимость сегмента
}

// IsFull returns true if the segment has no available slots
func (s *SegmentAvailability) IsFull() bool {
	return s.AvailableSlots <= 0
}

// IsEmpty returns true if nobody has been admitted for the segment yet
func (s *SegmentAvailability) IsEmpty() bool {
	return s.AvailableSlots == s.TotalSlots
}
