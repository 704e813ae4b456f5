package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner is implemented by *pgxpool.Pool and by pgxmock pools.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc runs inside a transaction.
type TxFunc func(pgx.Tx) error

// WithTransaction runs fn inside a transaction.
// The transaction is rolled back when fn returns an error or panics, and
// committed otherwise.
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransactionResult is WithTransaction for functions that produce a value.
func WithTransactionResult[T any](ctx context.Context, db Beginner, fn func(pgx.Tx) (T, error)) (T, error) {
	var result T

	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
