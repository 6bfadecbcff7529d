package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/execview/internal/db"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/repository"
)

// Batch is the full new content of one collection.
type Batch struct {
	Collection domain.Collection
	Records    []domain.Record
}

// NewBatch builds a Batch from a typed slice.
func NewBatch[T domain.Record](c domain.Collection, records []T) Batch {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = r
	}
	return Batch{Collection: c, Records: out}
}

type encodedBatch struct {
	collection domain.Collection
	ids        []string
	payloads   [][]byte
}

func encodeBatch(b Batch) (encodedBatch, error) {
	if err := checkCollection(b.Collection); err != nil {
		return encodedBatch{}, err
	}
	enc := encodedBatch{
		collection: b.Collection,
		ids:        make([]string, len(b.Records)),
		payloads:   make([][]byte, len(b.Records)),
	}
	for i, r := range b.Records {
		payload, err := json.Marshal(r)
		if err != nil {
			return encodedBatch{}, fmt.Errorf("encoding %s record %s: %w", b.Collection, r.RecordID(), err)
		}
		enc.ids[i] = r.RecordID()
		enc.payloads[i] = payload
	}
	return enc, nil
}

// BulkReplace atomically replaces the whole content of c with records, in
// order. On failure the previous content is left intact.
func (s *Store) BulkReplace(ctx context.Context, c domain.Collection, records []domain.Record) error {
	return s.ReplaceMany(ctx, Batch{Collection: c, Records: records})
}

// ReplaceMany replaces several collections in one transaction. Either every
// batch is applied or none is.
func (s *Store) ReplaceMany(ctx context.Context, batches ...Batch) error {
	_, uow, err := s.conn()
	if err != nil {
		return err
	}

	encoded := make([]encodedBatch, len(batches))
	names := make([]domain.Collection, len(batches))
	for i, b := range batches {
		if encoded[i], err = encodeBatch(b); err != nil {
			return err
		}
		names[i] = b.Collection
	}

	unlock := s.lockAll(names)
	defer unlock()

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := s.repos.Records(tx)
		for _, b := range encoded {
			if _, err := records.DeleteAll(ctx, string(b.collection)); err != nil {
				return err
			}
			for i, id := range b.ids {
				if err := records.InsertAt(ctx, string(b.collection), id, int64(i+1), b.payloads[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return s.failed("replace", domain.Collection(joinCollections(names)), err)
	}

	for _, b := range encoded {
		s.logger.Debug("collection replaced", "collection", string(b.collection), "records", len(b.ids))
	}
	return nil
}

func joinCollections(cs []domain.Collection) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// GetAll returns every record payload in c in insertion order. An empty
// collection yields an empty slice.
func (s *Store) GetAll(ctx context.Context, c domain.Collection) ([]json.RawMessage, error) {
	conn, _, err := s.conn()
	if err != nil {
		return nil, err
	}
	if err := checkCollection(c); err != nil {
		return nil, err
	}

	l := s.lockFor(c)
	l.RLock()
	defer l.RUnlock()

	recs, err := s.repos.Records(conn).List(ctx, string(c))
	if err != nil {
		return nil, s.failed("get all", c, err)
	}
	out := make([]json.RawMessage, len(recs))
	for i, r := range recs {
		out[i] = r.Payload
	}
	return out, nil
}

// GetByID returns the payload stored under id. A missing id is reported
// through found, not as an error.
func (s *Store) GetByID(ctx context.Context, c domain.Collection, id string) (payload json.RawMessage, found bool, err error) {
	conn, _, err := s.conn()
	if err != nil {
		return nil, false, err
	}
	if err := checkCollection(c); err != nil {
		return nil, false, err
	}

	l := s.lockFor(c)
	l.RLock()
	defer l.RUnlock()

	rec, err := s.repos.Records(conn).Get(ctx, string(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, s.failed("get", c, err)
	}
	return rec.Payload, true, nil
}

// Put inserts or replaces one record. A replaced record keeps its position.
func (s *Store) Put(ctx context.Context, c domain.Collection, record domain.Record) error {
	conn, _, err := s.conn()
	if err != nil {
		return err
	}
	if err := checkCollection(c); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %s record %s: %w", c, record.RecordID(), err)
	}

	l := s.lockFor(c)
	l.Lock()
	defer l.Unlock()

	if err := s.repos.Records(conn).Upsert(ctx, string(c), record.RecordID(), payload); err != nil {
		return s.failed("put", c, err)
	}
	return nil
}

// Delete removes one record and reports whether it existed.
func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	conn, _, err := s.conn()
	if err != nil {
		return false, err
	}
	if err := checkCollection(c); err != nil {
		return false, err
	}

	l := s.lockFor(c)
	l.Lock()
	defer l.Unlock()

	if err := s.repos.Records(conn).Delete(ctx, string(c), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, s.failed("delete", c, err)
	}
	return true, nil
}

// Count returns the number of records in c.
func (s *Store) Count(ctx context.Context, c domain.Collection) (int, error) {
	conn, _, err := s.conn()
	if err != nil {
		return 0, err
	}
	if err := checkCollection(c); err != nil {
		return 0, err
	}

	l := s.lockFor(c)
	l.RLock()
	defer l.RUnlock()

	n, err := s.repos.Records(conn).Count(ctx, string(c))
	if err != nil {
		return 0, s.failed("count", c, err)
	}
	return n, nil
}

// Collections lists the registered collections by name.
func (s *Store) Collections(ctx context.Context) ([]domain.Collection, error) {
	conn, _, err := s.conn()
	if err != nil {
		return nil, err
	}
	names, err := s.repos.Collections(conn).List(ctx)
	if err != nil {
		return nil, s.failed("list", "collections", err)
	}
	out := make([]domain.Collection, len(names))
	for i, n := range names {
		out[i] = domain.Collection(n)
	}
	return out, nil
}
