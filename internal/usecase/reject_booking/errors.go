package reject_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reject_booking: booking not found")

	// ErrContention возвращается, когда транзакция не смогла завершиться
	// из-за конкурентного доступа; операцию нужно повторить целиком
	ErrContention = errors.New("reject_booking: transaction contention, retry the operation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_booking: internal error")
)
