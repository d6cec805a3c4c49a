package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLClient is satisfied by both *sql.DB and *sql.Tx.
type SQLClient interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// txState is the open transaction and the work deferred until it commits.
type txState struct {
	tx          *sql.Tx
	afterCommit []func()
}

func stateFrom(ctx context.Context) *txState {
	st, _ := ctx.Value(txKey{}).(*txState)
	return st
}

// Conn returns the transaction stored in ctx by TxManager.Run, or db when there is none.
// Repositories call it on every statement so they join an open transaction transparently.
func Conn(ctx context.Context, db SQLClient) SQLClient {
	if st := stateFrom(ctx); st != nil {
		return st.tx
	}
	return db
}

// AfterCommit runs fn once the transaction in ctx commits and drops it on rollback.
// Without a transaction fn runs immediately. Use it for side effects such as
// email that must not escape a rolled back write.
func AfterCommit(ctx context.Context, fn func()) {
	if st := stateFrom(ctx); st != nil {
		st.afterCommit = append(st.afterCommit, fn)
		return
	}
	fn()
}

// TxManager runs a function inside a database transaction.
type TxManager interface {
	// Run begins a transaction and passes a context carrying it to fn.
	// It commits when fn returns nil and rolls back on error or panic.
	// Nested calls reuse the outer transaction.
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager backed by db.
func NewTxManager(db *sql.DB) TxManager {
	return &txManager{db: db}
}

func (tm *txManager) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if stateFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	st := &txState{tx: tx}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", commitErr)
		} else {
			for _, hook := range st.afterCommit {
				hook()
			}
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, st))
	return err
}
