package smsgateway

// sendRequest тело запроса на отправку SMS
type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ErrorResponse модель ошибки от SMS-шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
