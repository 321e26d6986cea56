package dbmetrics

import "context"

type ctxKey struct{}

// txKey ключ, по которому активная транзакция хранится в контексте
var txKey = ctxKey{}

// ContextWithExecutor кладет транзакцию в контекст
// Используется transaction manager'ами, чтобы репозитории внутри транзакции
// выполняли запросы через неё
func ContextWithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть
// Иначе возвращает переданный executor по умолчанию
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(TxExecutor); ok {
		return tx
	}
	return def
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
// Репозитории используют это, чтобы добавлять FOR UPDATE только внутри транзакций
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(TxExecutor)
	return ok
}
