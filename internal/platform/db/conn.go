package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations the repositories need. It is
// satisfied by *pgxpool.Pool, pgx.Tx, and mock pools in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type contextKey string

const querierKey contextKey = "db_querier"

// WithQuerier returns a context carrying q. Repositories prefer the
// context querier over their own pool, which routes repository calls
// through an open transaction or a test double.
func WithQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, querierKey, q)
}

// QuerierFromContext retrieves the context-scoped querier, or nil.
func QuerierFromContext(ctx context.Context) Querier {
	q, _ := ctx.Value(querierKey).(Querier)
	return q
}

// InTx runs fn inside a transaction. The transaction is placed in the
// context as the querier, so repository calls made by fn join it.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(WithQuerier(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
