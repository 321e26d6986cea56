package txmanager

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	execs      []string
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	t.execs = append(t.execs, query)
	return nil, nil
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx   *fakeTx
	opts *sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.opts = opts
	return b.tx, nil
}

func TestDoSerializable_SetsLockTimeoutAndCommits(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner, 3*time.Second)

	err := m.DoSerializable(context.Background(), func(txCtx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(txCtx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.tx.execs, 1)
	assert.Equal(t, "SET LOCAL lock_timeout = '3000ms'", beginner.tx.execs[0])
	assert.True(t, beginner.tx.committed)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestDo_ZeroLockTimeoutSkipsLimit(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner, 0)

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Empty(t, beginner.tx.execs)
	assert.True(t, beginner.tx.committed)
}

// Истекший lock_timeout (55P03), deadlock (40P01) и конфликт сериализации
// (40001) равнозначны для вызывающего кода: операция повторяется целиком
func TestDo_TransientPostgresErrorsMapToSerialization(t *testing.T) {
	for _, code := range []string{"55P03", "40P01", "40001"} {
		beginner := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(beginner, time.Second)

		err := m.Do(context.Background(), func(context.Context) error {
			return &pq.Error{Code: pq.ErrorCode(code)}
		})

		require.Error(t, err, "code %s", code)
		assert.ErrorIs(t, err, ErrSerialization, "code %s", code)
		assert.True(t, beginner.tx.rolledBack, "code %s", code)
	}
}

func TestDo_NonTransientErrorIsPassedThrough(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner, time.Second)

	// 23505 unique_violation - не транзиентная ошибка, повтор не поможет
	err := m.Do(context.Background(), func(context.Context) error {
		return &pq.Error{Code: "23505"}
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSerialization)
	assert.True(t, beginner.tx.rolledBack)
}

func TestDo_SerializationFailureOnCommit(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}
	m := NewTransactionManager(beginner, time.Second)

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
}
