// Package store is the persistent collection store: named collections of
// JSON records keyed by id, backed by a single SQLite database.
//
// Writers hold a per-collection write lock for the whole transaction and
// readers hold the read lock, so a reader never observes a collection that
// is half way through being replaced.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/alexanderramin/execview/internal/db"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/repository"
)

var (
	// ErrStoreUnavailable is returned by every operation before Open
	// succeeds or after Close.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTransactionFailed wraps any I/O failure during a read or write.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrUnknownCollection is returned for collection names outside the
	// schema.
	ErrUnknownCollection = errors.New("unknown collection")
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transaction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithUnitOfWork replaces the transaction runner built on Open.
func WithUnitOfWork(fn func(*sql.DB) db.UnitOfWork) Option {
	return func(s *Store) { s.newUoW = fn }
}

// Repos builds the repositories the store reads and writes through. Each
// constructor is called with either the pool or the open transaction.
type Repos struct {
	Collections func(db.DBTX) repository.CollectionRepo
	Records     func(db.DBTX) repository.RecordRepo
	Preferences func(db.DBTX) repository.PreferenceRepo
}

// SQLiteRepos returns the repositories backed by the SQLite schema.
func SQLiteRepos() Repos {
	return Repos{
		Collections: func(q db.DBTX) repository.CollectionRepo { return repository.NewSQLiteCollectionRepo(q) },
		Records:     func(q db.DBTX) repository.RecordRepo { return repository.NewSQLiteRecordRepo(q) },
		Preferences: func(q db.DBTX) repository.PreferenceRepo { return repository.NewSQLitePreferenceRepo(q) },
	}
}

// WithRepos replaces the repositories. Nil constructors keep the SQLite
// default.
func WithRepos(r Repos) Option {
	return func(s *Store) {
		if r.Collections != nil {
			s.repos.Collections = r.Collections
		}
		if r.Records != nil {
			s.repos.Records = r.Records
		}
		if r.Preferences != nil {
			s.repos.Preferences = r.Preferences
		}
	}
}

type Store struct {
	path   string
	logger *slog.Logger
	newUoW func(*sql.DB) db.UnitOfWork
	repos  Repos

	mu  sync.RWMutex
	db  *sql.DB
	uow db.UnitOfWork

	locksMu sync.Mutex
	locks   map[domain.Collection]*sync.RWMutex
}

// New returns an unopened store for the database at path. Use
// db.MemoryPath for a throwaway in-memory store.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
		newUoW: func(d *sql.DB) db.UnitOfWork { return db.NewSQLiteUnitOfWork(d) },
		repos:  SQLiteRepos(),
		locks:  make(map[domain.Collection]*sync.RWMutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the database, applies migrations and registers every
// known collection. It is idempotent and safe to call concurrently; all
// callers share one connection pool.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	conn, err := db.OpenDB(s.path)
	if err != nil {
		s.logger.Error("store open failed", "path", s.path, "error", err)
		return fmt.Errorf("opening store: %w: %w", ErrStoreUnavailable, err)
	}

	names := make([]string, 0, len(domain.AllCollections()))
	for _, c := range domain.AllCollections() {
		names = append(names, string(c))
	}
	if err := s.repos.Collections(conn).Ensure(ctx, names...); err != nil {
		conn.Close()
		s.logger.Error("registering collections failed", "path", s.path, "error", err)
		return fmt.Errorf("opening store: %w: %w", ErrStoreUnavailable, err)
	}

	s.db = conn
	s.uow = s.newUoW(conn)
	s.logger.Debug("store opened", "path", s.path, "collections", len(names))
	return nil
}

// Close releases the database. The store can be opened again afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db, s.uow = nil, nil
	return err
}

func (s *Store) conn() (*sql.DB, db.UnitOfWork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, nil, ErrStoreUnavailable
	}
	return s.db, s.uow, nil
}

func (s *Store) lockFor(c domain.Collection) *sync.RWMutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[c]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[c] = l
	}
	return l
}

// lockAll write-locks the given collections in name order and returns the
// matching unlock function.
func (s *Store) lockAll(cs []domain.Collection) func() {
	sorted := append([]domain.Collection(nil), cs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	held := make([]*sync.RWMutex, 0, len(sorted))
	for i, c := range sorted {
		if i > 0 && sorted[i-1] == c {
			continue
		}
		l := s.lockFor(c)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func checkCollection(c domain.Collection) error {
	if !domain.KnownCollection(c) {
		return fmt.Errorf("%q: %w", c, ErrUnknownCollection)
	}
	return nil
}

// failed logs an I/O failure with full detail and wraps it for callers.
func (s *Store) failed(op string, c domain.Collection, err error) error {
	s.logger.Error("store operation failed", "op", op, "collection", string(c), "error", err)
	return fmt.Errorf("%s %s: %w: %w", op, c, ErrTransactionFailed, err)
}
