package txmanager

import "errors"

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization возвращается, когда транзакция не смогла завершиться
	// из-за конфликта сериализации или deadlock (коды PostgreSQL 40001, 40P01)
	// Операцию нужно повторить целиком
	ErrSerialization = errors.New("txmanager: serialization failure, retry the operation")
)
