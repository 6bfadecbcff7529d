package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/execview/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) (*db.SQLiteUnitOfWork, db.DBTX) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO collections (name, created_at) VALUES ('uow', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	return db.NewSQLiteUnitOfWork(database), database
}

func insertRecord(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO records (collection, id, seq, payload, updated_at) VALUES ('uow', ?, 1, '{}', '2024-01-01T00:00:00Z')`, id)
	return err
}

func recordExists(t *testing.T, q db.DBTX, id string) bool {
	t.Helper()
	var n int
	err := q.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM records WHERE collection = 'uow' AND id = ?`, id).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, q := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertRecord(ctx, tx, "k1")
	})
	require.NoError(t, err)

	assert.True(t, recordExists(t, q, "k1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, q := openTestUoW(t)
	deliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRecord(ctx, tx, "k2"); err != nil {
			return err
		}
		return deliberate
	})
	require.ErrorIs(t, err, deliberate)

	assert.False(t, recordExists(t, q, "k2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, q := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertRecord(ctx, tx, "k3")
			panic("boom")
		})
	})

	assert.False(t, recordExists(t, q, "k3"), "row should not exist after panic rollback")
}

func TestWithinTx_ReplaceAcrossCollectionsIsAllOrNothing(t *testing.T) {
	uow, q := openTestUoW(t)
	ctx := context.Background()
	_, err := q.ExecContext(ctx, `INSERT INTO collections (name, created_at) VALUES ('uow_other', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertRecord(ctx, tx, "old")
	}))

	diskFull := errors.New("disk full")
	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = 'uow'`); err != nil {
			return err
		}
		if err := insertRecord(ctx, tx, "new"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (collection, id, seq, payload, updated_at) VALUES ('uow_other', 'x', 1, '{}', '2024-01-01T00:00:00Z')`); err != nil {
			return err
		}
		return diskFull
	})
	require.ErrorIs(t, err, diskFull)

	assert.True(t, recordExists(t, q, "old"), "cleared collection should be restored")
	assert.False(t, recordExists(t, q, "new"))
	var n int
	require.NoError(t, q.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE collection = 'uow_other'`).Scan(&n))
	assert.Zero(t, n)
}
