package service

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/store"
)

// State is the lifecycle state of the dashboard.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// DashboardService owns the dashboard dataset: it seeds it on first run,
// loads snapshots through the simulated remote facade, applies
// notification reads and regenerates everything on reset.
type DashboardService interface {
	// EnsureInitialized seeds the store when no financial data exists and
	// reports whether it did.
	EnsureInitialized(ctx context.Context) (bool, error)
	// GetDataset loads every domain series at g plus the notification feed.
	GetDataset(ctx context.Context, g domain.Granularity) (*domain.Snapshot, error)
	// MarkNotificationRead marks one notification as read. An unknown id
	// yields false and no error.
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
	// ResetDataset regenerates all metric series and notifications. Users
	// and settings are kept, or seeded if the profile never had them. A
	// failed reload of the new data is reported as ErrReloadAfterReset.
	ResetDataset(ctx context.Context) error
	// Summary returns the KPI summary of the last loaded snapshot.
	Summary() (domain.Summary, error)
	// ExportCollection encodes one section of the last loaded snapshot.
	ExportCollection(section Section, format ExportFormat) ([]byte, error)
	State() State
}

// PreferenceService manages the mock session and display preferences.
type PreferenceService interface {
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, t domain.Theme) error
	Login(ctx context.Context, email string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, bool, error)
}

// CollectionStore is the part of the store the dashboard writes through
// directly.
type CollectionStore interface {
	Count(ctx context.Context, c domain.Collection) (int, error)
	GetByID(ctx context.Context, c domain.Collection, id string) (json.RawMessage, bool, error)
	ReplaceMany(ctx context.Context, batches ...store.Batch) error
}

// RemoteFacade is the simulated remote service reads and updates go
// through.
type RemoteFacade interface {
	Fetch(ctx context.Context, c domain.Collection) ([]json.RawMessage, error)
	Update(ctx context.Context, c domain.Collection, record domain.Record) error
}
