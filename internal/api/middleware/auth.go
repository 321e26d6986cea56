package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-VisitBookingService/internal/api/handlers"
)

// OperatorIDHeader заголовок с идентификатором оператора
// Аутентификацию выполняет вышестоящий gateway, сервис доверяет заголовку
const OperatorIDHeader = "X-Operator-ID"

// Auth проверяет наличие заголовка X-Operator-ID на операторских маршрутах
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(OperatorIDHeader) == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-Operator-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}
