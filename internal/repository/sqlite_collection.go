package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/execview/internal/db"
)

// SQLiteCollectionRepo implements CollectionRepo using a SQLite database.
type SQLiteCollectionRepo struct {
	db db.DBTX
}

var _ CollectionRepo = (*SQLiteCollectionRepo)(nil)

func NewSQLiteCollectionRepo(conn db.DBTX) *SQLiteCollectionRepo {
	return &SQLiteCollectionRepo{db: conn}
}

// Ensure registers each named collection. Already registered names are left
// untouched.
func (r *SQLiteCollectionRepo) Ensure(ctx context.Context, names ...string) error {
	now := nowUTC()
	for _, name := range names {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO collections (name, created_at) VALUES (?, ?)`, name, now)
		if err != nil {
			return fmt.Errorf("registering collection %s: %w", name, err)
		}
	}
	return nil
}

func (r *SQLiteCollectionRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
