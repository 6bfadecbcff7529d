package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// StoredRecord is one JSON document in a collection. Seq orders records by
// first insertion.
type StoredRecord struct {
	Collection string
	ID         string
	Seq        int64
	Payload    json.RawMessage
	UpdatedAt  time.Time
}

type CollectionRepo interface {
	Ensure(ctx context.Context, names ...string) error
	List(ctx context.Context) ([]string, error)
}

type RecordRepo interface {
	List(ctx context.Context, collection string) ([]StoredRecord, error)
	Get(ctx context.Context, collection, id string) (*StoredRecord, error)
	// InsertAt writes a record at an explicit position, overwriting the
	// payload of an existing record with the same id.
	InsertAt(ctx context.Context, collection, id string, seq int64, payload []byte) error
	// Upsert appends a new record or replaces an existing record's payload
	// in place.
	Upsert(ctx context.Context, collection, id string, payload []byte) error
	Delete(ctx context.Context, collection, id string) error
	DeleteAll(ctx context.Context, collection string) (int64, error)
	Count(ctx context.Context, collection string) (int, error)
}

type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
