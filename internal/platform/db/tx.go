package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// TxKey carries an open pgx transaction through a request context.
// Repositories check for it before falling back to the pool, so every
// statement issued inside RunInTx joins the same transaction.
const TxKey contextKey = "db_tx"

// Querier is the subset of pgx that repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxFromContext returns the transaction stored in ctx, or nil.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(TxKey).(pgx.Tx)
	return tx
}

// WithTx begins a transaction on the pool and returns a derived context
// carrying it. The caller owns Commit/Rollback. If ctx already carries a
// transaction, it is reused so nested units of work share one boundary.
func WithTx(ctx context.Context, pool *pgxpool.Pool) (context.Context, pgx.Tx, error) {
	if tx := TxFromContext(ctx); tx != nil {
		return ctx, tx, nil
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("begin transaction: %w", err)
	}
	return context.WithValue(ctx, TxKey, tx), tx, nil
}

// TxRunner executes a function inside a single atomic unit of work.
// The coordinator depends on this interface rather than on pgx directly so
// tests can substitute an in-memory runner.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PoolRunner is the production TxRunner backed by a pgx pool.
type PoolRunner struct {
	pool *pgxpool.Pool
}

func NewPoolRunner(pool *pgxpool.Pool) *PoolRunner {
	return &PoolRunner{pool: pool}
}

// RunInTx begins a transaction, runs fn with the transaction in context,
// and commits. Any error from fn (or a panic) rolls the whole unit back and
// is returned unchanged so callers keep the original error kind.
func (r *PoolRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	nested := TxFromContext(ctx) != nil

	txCtx, tx, err := WithTx(ctx, r.pool)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if !nested {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				return fmt.Errorf("rollback after %w: %v", err, rbErr)
			}
		}
		return err
	}

	if nested {
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
