package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/execview/internal/db"
)

// SQLiteRecordRepo implements RecordRepo using a SQLite database. Payloads
// are stored as JSON text.
type SQLiteRecordRepo struct {
	db db.DBTX
}

var _ RecordRepo = (*SQLiteRecordRepo)(nil)

func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

const recordColumns = `collection, id, seq, payload, updated_at`

func (r *SQLiteRecordRepo) List(ctx context.Context, collection string) ([]StoredRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE collection = ? ORDER BY seq, id`, collection)
	if err != nil {
		return nil, fmt.Errorf("listing records in %s: %w", collection, err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records in %s: %w", collection, err)
	}
	return out, nil
}

func (r *SQLiteRecordRepo) Get(ctx context.Context, collection, id string) (*StoredRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE collection = ? AND id = ?`, collection, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s/%s: %w", collection, id, ErrNotFound)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteRecordRepo) InsertAt(ctx context.Context, collection, id string, seq int64, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, seq, payload, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		collection, id, seq, string(payload), nowUTC())
	if err != nil {
		return fmt.Errorf("inserting record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *SQLiteRecordRepo) Upsert(ctx context.Context, collection, id string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, seq, payload, updated_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE collection = ?), ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		collection, id, collection, string(payload), nowUTC())
	if err != nil {
		return fmt.Errorf("upserting record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *SQLiteRecordRepo) Delete(ctx context.Context, collection, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("deleting record %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("record %s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRecordRepo) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, collection)
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", collection, err)
	}
	return n, nil
}

func (r *SQLiteRecordRepo) Count(ctx context.Context, collection string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE collection = ?`, collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (StoredRecord, error) {
	var (
		rec       StoredRecord
		payload   string
		updatedAt string
	)
	if err := s.Scan(&rec.Collection, &rec.ID, &rec.Seq, &payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning record: %w", err)
	}
	rec.Payload = []byte(payload)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return rec, nil
}
