package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Executor is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx.
// Repositories run against it so the same query code works inside and
// outside a transaction.
type Executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// TxRunner wraps a function in a single all-or-nothing transaction boundary.
// Implemented by TxManager for Postgres and by the in-memory store in tests.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTransaction begins a transaction, stashes it in the context for
// repositories to pick up via Ext, and commits only if fn returns nil.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ctx = context.WithValue(ctx, txKey{}, tx)
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit()
}

// Ext returns the transaction bound to ctx if there is one, otherwise db.
func Ext(ctx context.Context, db *sqlx.DB) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
