// Package repository implements PostgreSQL persistence for Tindahan.
//
// Queries is a thin data-access layer over pgx: one method per SQL statement,
// taking and returning domain types. Services depend on the Querier interface
// so they can be tested with in-memory fakes.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx used by Queries. Both *pgxpool.Pool and pgx.Tx
// satisfy it, so the same query methods run inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements Querier against a DBTX.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

var _ Querier = (*Queries)(nil)

// Store couples a connection pool with transaction management.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Queries: New(pool),
		pool:    pool,
	}
}

var _ TxStore = (*Store)(nil)

// WithTx runs fn inside a single database transaction. The Querier passed to
// fn is bound to the transaction; any error from fn rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if err := fn(New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
