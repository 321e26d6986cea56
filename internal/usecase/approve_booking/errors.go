package approve_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("approve_booking: booking not found")

	// ErrContention возвращается, когда транзакция не смогла завершиться
	// из-за конкурентного доступа (deadlock, конфликт сериализации)
	// Операцию нужно повторить целиком; с бизнес-отказом
	// "slots not available" эта ошибка не имеет ничего общего
	ErrContention = errors.New("approve_booking: transaction contention, retry the operation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)
