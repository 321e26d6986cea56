package handlers

import (
	"encoding/json"
	"net/http"
)

// Response единый конверт ответа API
// Бизнес-отказы (например, отклонение из-за нехватки мест) приходят
// с error=false: это успешно завершенные операции, а не сбои
type Response struct {
	Data    interface{} `json:"data"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Error   bool        `json:"error"`
}

// RespondJSON отправляет успешный ответ в общем конверте
func RespondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	writeResponse(w, Response{
		Data:    orEmpty(data),
		Status:  status,
		Message: message,
		Error:   false,
	})
}

// RespondError отправляет ответ с ошибкой в общем конверте
func RespondError(w http.ResponseWriter, status int, message string) {
	writeResponse(w, Response{
		Data:    struct{}{},
		Status:  status,
		Message: message,
		Error:   true,
	})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondConflict отправляет 409 Conflict
// Используется для транзиентных конфликтов конкурентного доступа,
// когда вызывающей стороне нужно повторить операцию
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}

func orEmpty(data interface{}) interface{} {
	if data == nil {
		return struct{}{}
	}
	return data
}
