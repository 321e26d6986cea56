package approve_booking

// Причины решения, возвращаемые вызывающему коду
const (
	ReasonApproved   = "booking approved"
	ReasonNotPending = "booking is not pending"
	ReasonNoSlots    = "slots not available, booking rejected"
)

// Тексты SMS-уведомлений
const (
	smsApproved = "Your booking is confirmed"
	smsNoSlots  = "Slots not available, booking rejected"
)

// Request модель запроса на одобрение бронирования
type Request struct {
	BookingID int64
}

// Response результат решения по бронированию
//
// Отказ из-за нехватки мест и отказ из-за не-pending статуса - это
// успешно завершенные операции с Admitted=false, а не ошибки
type Response struct {
	Admitted bool   // Принято ли бронирование
	Reason   string // Причина решения
}
