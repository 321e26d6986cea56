package reject_booking

// Причины результата, возвращаемые вызывающему коду
const (
	ReasonRejected        = "booking rejected"
	ReasonAlreadyRejected = "already rejected"
)

// smsRejected текст SMS-уведомления об отклонении
const smsRejected = "Your booking has been rejected"

// Request модель запроса на отклонение бронирования
type Request struct {
	BookingID int64
}

// Response результат отклонения
type Response struct {
	Ok     bool
	Reason string
}
