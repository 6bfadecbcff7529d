package db

import (
	"context"
	"database/sql"
	"fmt"
)

// TxFunc is the body of one store transaction. Everything it writes through
// tx commits together: a bulk replace deletes and re-inserts each of its
// collections inside a single TxFunc.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork runs a TxFunc atomically. Readers never see a partial write;
// an error or panic from fn leaves the database as it was before the call.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork runs each TxFunc in its own database/sql transaction.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		// fn panicked; undo its writes and keep unwinding.
		_ = tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if ferr := fn(ctx, tx); ferr != nil {
		done = true
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("undoing writes after %w: %v", ferr, rbErr)
		}
		return ferr
	}

	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
