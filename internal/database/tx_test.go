package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE carts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tm := NewTxManager(db)
		err = tm.Run(ctx, func(ctx context.Context) error {
			_, err := Conn(ctx, db).ExecContext(ctx, "UPDATE carts SET items_json = '[]'")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		tm := NewTxManager(db)
		err = tm.Run(ctx, func(ctx context.Context) error {
			return errors.New("checkout failed")
		})

		assert.EqualError(t, err, "checkout failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		tm := NewTxManager(db)
		assert.Panics(t, func() {
			_ = tm.Run(ctx, func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		tm := NewTxManager(db)
		err = tm.Run(ctx, func(ctx context.Context) error { return nil })

		assert.ErrorContains(t, err, "begin transaction: no conn")
	})

	t.Run("nested run reuses transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tm := NewTxManager(db)
		calls := 0
		err = tm.Run(ctx, func(ctx context.Context) error {
			return tm.Run(ctx, func(ctx context.Context) error {
				calls++
				return nil
			})
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConn_WithoutTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, db, Conn(context.Background(), db))
}

func TestAfterCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("runs after commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		var sent []string
		err = NewTxManager(db).Run(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { sent = append(sent, "invite") })
			assert.Empty(t, sent)
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"invite"}, sent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped on rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		sent := 0
		err = NewTxManager(db).Run(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { sent++ })
			return errors.New("slug is taken")
		})

		assert.Error(t, err)
		assert.Zero(t, sent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped when commit fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		sent := 0
		err = NewTxManager(db).Run(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { sent++ })
			return nil
		})

		assert.ErrorContains(t, err, "commit transaction")
		assert.Zero(t, sent)
	})

	t.Run("nested hooks wait for the outer commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		tm := NewTxManager(db)
		sent := 0
		err = tm.Run(ctx, func(ctx context.Context) error {
			if err := tm.Run(ctx, func(ctx context.Context) error {
				AfterCommit(ctx, func() { sent++ })
				return nil
			}); err != nil {
				return err
			}
			return errors.New("insert failed")
		})

		assert.Error(t, err)
		assert.Zero(t, sent)
	})

	t.Run("immediate without a transaction", func(t *testing.T) {
		sent := 0
		AfterCommit(ctx, func() { sent++ })
		assert.Equal(t, 1, sent)
	})
}
