package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/logger"
)

func newTestClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	return NewClientWithDB(db, log), mock
}

func TestWithTx_Commit(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO policies").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		_, err := client.Querier(ctx).ExecContext(ctx, "INSERT INTO policies (id) VALUES ($1)", "poly_1")
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO policies").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("second write failed")
	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		if _, err := client.Querier(ctx).ExecContext(ctx, "INSERT INTO policies (id) VALUES ($1)", "poly_1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = client.WithTx(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_NestedJoinsEnclosingTransaction(t *testing.T) {
	client, mock := newTestClient(t)

	// One begin, one commit, even with a nested WithTx.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE policies").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		return client.WithTx(ctx, func(ctx context.Context) error {
			_, err := client.Querier(ctx).ExecContext(ctx, "UPDATE policies SET policy_status = $1", "active")
			return err
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuerier_OutsideTransactionUsesPool(t *testing.T) {
	client, mock := newTestClient(t)

	mock.ExpectExec("DELETE FROM policies").WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	_, err := client.Querier(ctx).ExecContext(ctx, "DELETE FROM policies WHERE id = $1", "poly_1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
