package domain

// Person участник бронирования
// Принадлежит ровно одному бронированию и удаляется вместе с ним
type Person struct {
	ID        int64
	BookingID int64
	Name      string

	// Идентификационные данные участника
	// На алгоритм распределения мест не влияют
	IdentityNumber  string
	IdentityDetails *string
}
