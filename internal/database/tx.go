package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type txKey struct{}

// Executor is the subset of *sql.DB and *sql.Tx used by repositories
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxOptions selects the transaction mode
type TxOptions struct {
	ReadOnly bool
}

var (
	ReadWrite = TxOptions{}
	ReadOnly  = TxOptions{ReadOnly: true}
)

// Transactor runs a function inside a single database transaction
type Transactor interface {
	WithinTx(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error
}

type transactor struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewTransactor(db *sql.DB, logger *zap.Logger) Transactor {
	return &transactor{db: db, logger: logger}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
// A nested call joins the transaction already present in ctx.
func (t *transactor) WithinTx(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			t.rollback(tx)
			panic(p)
		}
		if err != nil {
			t.rollback(tx)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *transactor) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		t.logger.Error("Failed to rollback transaction", zap.Error(err))
	}
}

// TxFromContext returns the transaction stored by WithinTx
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// ExecutorFrom picks the context transaction when present, the pool otherwise
func ExecutorFrom(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
