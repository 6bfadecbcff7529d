package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/generation"
	"github.com/alexanderramin/execview/internal/store"
	"golang.org/x/sync/errgroup"
)

type dashboardService struct {
	store    CollectionStore
	remote   RemoteFacade
	synth    *generation.Synthesizer
	now      func() time.Time
	observer UseCaseObserver

	// writeMu serializes seeding and resets.
	writeMu sync.Mutex

	mu          sync.RWMutex
	state       State
	snapshot    *domain.Snapshot
	granularity domain.Granularity
}

func NewDashboardService(
	st CollectionStore,
	remote RemoteFacade,
	synth *generation.Synthesizer,
	now func() time.Time,
	observers ...UseCaseObserver,
) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		store:       st,
		remote:      remote,
		synth:       synth,
		now:         now,
		observer:    useCaseObserverOrNoop(observers),
		granularity: domain.Monthly,
	}
}

func (s *dashboardService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *dashboardService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *dashboardService) setReady() {
	s.mu.Lock()
	s.state = StateReady
	s.mu.Unlock()
}

func (s *dashboardService) EnsureInitialized(ctx context.Context) (seeded bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["seeded"] = seeded
		s.observe(ctx, "ensure-initialized", startedAt, fields, err)
	}()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	n, err := s.store.Count(ctx, domain.CollectionFinancial)
	if err != nil {
		return false, fmt.Errorf("checking existing data: %w", err)
	}
	if n > 0 {
		s.setReady()
		return false, nil
	}

	batches := s.seedBatches()
	if err := s.store.ReplaceMany(ctx, batches...); err != nil {
		return false, fmt.Errorf("seeding dataset: %w", err)
	}
	fields["collections"] = len(batches)

	s.setReady()
	return true, nil
}

// seedBatches is the full first-run dataset, reference data included.
func (s *dashboardService) seedBatches() []store.Batch {
	ds := s.synth.Dataset()
	return append(seriesBatches(ds.Series),
		store.NewBatch(domain.CollectionNotifications, ds.Notifications),
		store.NewBatch(domain.CollectionUsers, ds.Users),
		store.NewBatch(domain.CollectionSettings, ds.Settings),
	)
}

// resetBatches regenerates the metric series and notifications. A profile
// whose users were never seeded gets the full first-run dataset instead.
func (s *dashboardService) resetBatches(ctx context.Context) ([]store.Batch, error) {
	users, err := s.store.Count(ctx, domain.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("checking reference data: %w", err)
	}
	if users == 0 {
		return s.seedBatches(), nil
	}
	batches := seriesBatches(s.synth.Metrics())
	return append(batches, store.NewBatch(domain.CollectionNotifications, generation.SeedNotifications(s.now()))), nil
}

// seriesBatches lays out every cadence of every metric domain as one batch
// per collection.
func seriesBatches(series map[domain.Granularity]domain.Series) []store.Batch {
	out := make([]store.Batch, 0, len(domain.AllGranularities)*len(domain.MetricCollections))
	for _, g := range domain.AllGranularities {
		ser := series[g]
		out = append(out,
			store.NewBatch(domain.SeriesCollection(domain.CollectionFinancial, g), ser.Financial),
			store.NewBatch(domain.SeriesCollection(domain.CollectionSales, g), ser.Sales),
			store.NewBatch(domain.SeriesCollection(domain.CollectionOperations, g), ser.Operations),
			store.NewBatch(domain.SeriesCollection(domain.CollectionCustomer, g), ser.Customer),
			store.NewBatch(domain.SeriesCollection(domain.CollectionEmployee, g), ser.Employee),
		)
	}
	return out
}

func fetchInto[T any](ctx context.Context, remote RemoteFacade, c domain.Collection, dst *[]T) error {
	payloads, err := remote.Fetch(ctx, c)
	if err != nil {
		return err
	}
	out, err := store.Decode[T](c, payloads)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}

func (s *dashboardService) GetDataset(ctx context.Context, g domain.Granularity) (snap *domain.Snapshot, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "get-dataset", startedAt, map[string]any{"granularity": string(g)}, err)
	}()

	if !g.Valid() {
		return nil, fmt.Errorf("loading dataset: %q: %w", g, domain.ErrUnknownGranularity)
	}

	loaded := &domain.Snapshot{Granularity: g}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.SeriesCollection(domain.CollectionFinancial, g), &loaded.Financial)
	})
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.SeriesCollection(domain.CollectionSales, g), &loaded.Sales)
	})
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.SeriesCollection(domain.CollectionOperations, g), &loaded.Operations)
	})
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.SeriesCollection(domain.CollectionCustomer, g), &loaded.Customer)
	})
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.SeriesCollection(domain.CollectionEmployee, g), &loaded.Employee)
	})
	eg.Go(func() error {
		return fetchInto(egCtx, s.remote, domain.CollectionNotifications, &loaded.Notifications)
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	loaded.LastUpdated = s.now().UTC()

	s.mu.Lock()
	s.snapshot = loaded
	s.granularity = g
	s.mu.Unlock()

	return loaded.Clone(), nil
}

func (s *dashboardService) MarkNotificationRead(ctx context.Context, id string) (ok bool, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "mark-notification-read", startedAt, map[string]any{"id": id, "found": ok}, err)
	}()

	payload, found, err := s.store.GetByID(ctx, domain.CollectionNotifications, id)
	if err != nil {
		return false, fmt.Errorf("reading notification: %w", err)
	}
	if !found {
		return false, nil
	}
	var n domain.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return false, fmt.Errorf("decoding notification %s: %w", id, err)
	}
	if !n.MarkRead() {
		return true, nil
	}

	// A failed update leaves the cached snapshot as it was; callers re-fetch
	// to see the stored state.
	if err := s.remote.Update(ctx, domain.CollectionNotifications, n); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.snapshot != nil {
		for i := range s.snapshot.Notifications {
			if s.snapshot.Notifications[i].ID == id {
				s.snapshot.Notifications[i].Read = true
			}
		}
	}
	s.mu.Unlock()
	return true, nil
}

func (s *dashboardService) ResetDataset(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, "reset-dataset", startedAt, fields, err)
	}()

	if err := s.regenerate(ctx, fields); err != nil {
		return fmt.Errorf("resetting dataset: %w", err)
	}
	s.setReady()

	s.mu.RLock()
	g := s.granularity
	s.mu.RUnlock()
	if _, err := s.GetDataset(ctx, g); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadAfterReset, err)
	}
	return nil
}

func (s *dashboardService) regenerate(ctx context.Context, fields map[string]any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	batches, err := s.resetBatches(ctx)
	if err != nil {
		return err
	}
	fields["collections"] = len(batches)
	return s.store.ReplaceMany(ctx, batches...)
}

func (s *dashboardService) cached() (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return s.snapshot.Clone(), nil
}

func (s *dashboardService) Summary() (domain.Summary, error) {
	snap, err := s.cached()
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.BuildSummary(snap), nil
}

func (s *dashboardService) ExportCollection(section Section, format ExportFormat) ([]byte, error) {
	snap, err := s.cached()
	if err != nil {
		return nil, err
	}
	rows, err := sectionRows(snap, section)
	if err != nil {
		return nil, err
	}
	return Export(rows, string(section), format)
}
