package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeanneDioso/storefront/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPostgresError translates driver errors into the model error taxonomy.
// Anything that is not a recognizable constraint or missing-row condition is
// treated as a fatal storage failure.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrConflict
		case "23503": // foreign_key_violation
			return models.ErrBadRequest
		case "23502": // not_null_violation
			return models.ErrBadRequest
		}
	}

	return fmt.Errorf("%w: %v", models.ErrStorage, err)
}

// txBeginner is the slice of pgxpool.Pool needed to start a transaction.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return runInTransaction(ctx, db.Pool, fn)
}

// runInTransaction commits only when fn succeeds. The named return is load
// bearing: the deferred commit must be able to overwrite the result, so a
// failed commit surfaces to the caller as a storage error instead of a
// silent success.
func runInTransaction(ctx context.Context, pool txBeginner, fn func(pgx.Tx) error) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("%w: %v", models.ErrStorage, cerr)
		}
	}()

	return fn(tx)
}
