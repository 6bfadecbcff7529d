package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/execview/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th ExecContext call of each
// transaction, counting from 1. Reads pass through. It lets tests check
// that a multi-write operation rolls back as a whole.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Calls counts transactions started through this UoW.
	Calls atomic.Int32
}

// FailingUoW returns a store option that runs every write transaction
// through a FailOnNthExecUoW.
func FailingUoW(failOn int32, err error) func(*sql.DB) db.UnitOfWork {
	return func(d *sql.DB) db.UnitOfWork {
		return &FailOnNthExecUoW{DB: d, FailOn: failOn, Err: err}
	}
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	u.Calls.Add(1)
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
