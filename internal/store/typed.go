package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/execview/internal/domain"
)

// Decode unmarshals raw payloads into T.
func Decode[T any](c domain.Collection, payloads []json.RawMessage) ([]T, error) {
	out := make([]T, len(payloads))
	for i, p := range payloads {
		if err := json.Unmarshal(p, &out[i]); err != nil {
			return nil, fmt.Errorf("decoding %s record %d: %w", c, i, err)
		}
	}
	return out, nil
}

// All returns every record in c decoded as T.
func All[T any](ctx context.Context, s *Store, c domain.Collection) ([]T, error) {
	payloads, err := s.GetAll(ctx, c)
	if err != nil {
		return nil, err
	}
	return Decode[T](c, payloads)
}

// Find returns the record stored under id decoded as T.
func Find[T any](ctx context.Context, s *Store, c domain.Collection, id string) (T, bool, error) {
	var zero T
	payload, found, err := s.GetByID(ctx, c, id)
	if err != nil || !found {
		return zero, false, err
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return zero, false, fmt.Errorf("decoding %s record %s: %w", c, id, err)
	}
	return out, true, nil
}

// Replace is BulkReplace for a typed slice.
func Replace[T domain.Record](ctx context.Context, s *Store, c domain.Collection, records []T) error {
	return s.ReplaceMany(ctx, NewBatch(c, records))
}
