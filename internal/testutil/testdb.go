package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/execview/internal/db"
	"github.com/alexanderramin/execview/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStore opens an in-memory collection store that is closed when the
// test completes.
func NewTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	s := store.New(db.MemoryPath, opts...)
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
