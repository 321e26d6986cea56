package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-VisitBookingService/pkg/dbmetrics"
)

// Коды ошибок PostgreSQL, означающие конфликт конкурентных транзакций
// Все три транзиентны: вызывающий код повторяет операцию целиком
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций поверх обёрнутой метриками БД
// Кладет транзакцию в контекст, чтобы репозитории выполняли запросы через неё
type TransactionManager struct {
	db          TxBeginner
	lockTimeout time.Duration
}

// NewTransactionManager создает новый менеджер транзакций
// lockTimeout ограничивает ожидание блокировок строк внутри транзакции;
// ноль отключает лимит
func NewTransactionManager(db TxBeginner, lockTimeout time.Duration) *TransactionManager {
	return &TransactionManager{db: db, lockTimeout: lockTimeout}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// Используется там, где решение зависит от прочитанного состояния
// (проверка занятости слотов перед одобрением)
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	// Ожидание блокировки (FOR UPDATE на группе бронирований) ограничено:
	// по истечении лимита Postgres прерывает запрос с кодом 55P03,
	// который превращается в ErrSerialization
	if m.lockTimeout > 0 {
		setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, setTimeout); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("%w: set lock_timeout: %v", ErrBeginTx, err)
		}
	}

	txCtx := dbmetrics.ContextWithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback() //nolint:errcheck
		return wrapIfSerialization(err)
	}

	if err := tx.Commit(); err != nil {
		if isSerializationError(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// wrapIfSerialization заменяет ошибки конфликта сериализации на ErrSerialization,
// чтобы вызывающий код мог отличить их от бизнес-ошибок и повторить операцию
func wrapIfSerialization(err error) error {
	if isSerializationError(err) {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return err
}

func isSerializationError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
	}
	return false
}
