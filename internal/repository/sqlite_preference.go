package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/execview/internal/db"
)

// SQLitePreferenceRepo implements PreferenceRepo using a SQLite database.
type SQLitePreferenceRepo struct {
	db db.DBTX
}

var _ PreferenceRepo = (*SQLitePreferenceRepo)(nil)

func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn}
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("preference %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading preference %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, nowUTC())
	if err != nil {
		return fmt.Errorf("writing preference %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (r *SQLitePreferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference %s: %w", key, err)
	}
	return nil
}

func (r *SQLitePreferenceRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("clearing preferences: %w", err)
	}
	return nil
}
