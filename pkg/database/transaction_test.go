package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_ReadWriteCommit(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tm := NewTransactionManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		_, ok := txFromContext(ctx)
		assert.True(t, ok, "transaction not injected into context")
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tm := NewTransactionManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectRollback()

	expected := errors.New("usecase error")
	err = tm.WithinReadOnly(context.Background(), func(ctx context.Context) error {
		return expected
	})
	assert.ErrorIs(t, err, expected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tm := NewTransactionManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(outer context.Context) error {
		return tm.WithinReadWrite(outer, func(inner context.Context) error {
			a, _ := txFromContext(outer)
			b, _ := txFromContext(inner)
			assert.True(t, a == b, "nested call opened a new transaction")
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NilRunsDirectly(t *testing.T) {
	t.Parallel()

	var tm *TransactionManager
	called := false
	err := tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		called = true
		_, ok := txFromContext(ctx)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestQueryerFromContext_Fallback(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, Queryer(mock), QueryerFromContext(context.Background(), mock))
}
