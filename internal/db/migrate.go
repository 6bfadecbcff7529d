package db

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order. The database's PRAGMA user_version holds
// the number already applied, so each step runs exactly once. Steps only
// ever add tables, columns or indexes.
var migrations = [][]string{
	// 1: collection store and scalar preferences.
	{
		`CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			id         TEXT NOT NULL,
			seq        INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_collection_seq ON records(collection, seq)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}

// SchemaVersion is the version a fully migrated database reports.
var SchemaVersion = len(migrations)

// Migrate applies every pending migration step, each in its own
// transaction.
func Migrate(db *sql.DB) error {
	ctx := context.Background()

	current, err := UserVersion(ctx, db)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, len(migrations))
	}

	uow := NewSQLiteUnitOfWork(db)
	for v := current; v < len(migrations); v++ {
		step := migrations[v]
		next := v + 1
		err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
			for i, stmt := range step {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("statement %d: %w", i, err)
				}
			}
			// PRAGMA does not accept bound parameters.
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", next))
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d: %w", next, err)
		}
	}
	return nil
}

// UserVersion reads the applied schema version.
func UserVersion(ctx context.Context, db DBTX) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
