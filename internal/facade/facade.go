// Package facade makes the local collection store behave like a remote
// service: every call waits a random delay, and updates occasionally fail.
package facade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/store"
)

// ErrSimulatedTransientFailure is returned by Update when the injected
// failure fires. The store is not touched in that case.
var ErrSimulatedTransientFailure = errors.New("simulated transient failure")

const (
	opFetch  = "fetch"
	opUpdate = "update"
)

// Band is an inclusive range of simulated latency.
type Band struct {
	Min time.Duration
	Max time.Duration
}

// Config controls simulated latency and failure injection.
type Config struct {
	FetchDelay  Band
	UpdateDelay Band
	// FailureRate is the probability in [0, 1] that an Update fails.
	FailureRate float64
}

func DefaultConfig() Config {
	return Config{
		FetchDelay:  Band{Min: 300 * time.Millisecond, Max: 800 * time.Millisecond},
		UpdateDelay: Band{Min: 300 * time.Millisecond, Max: 600 * time.Millisecond},
		FailureRate: 0.05,
	}
}

// Store is the part of the collection store the facade fronts.
type Store interface {
	GetAll(ctx context.Context, c domain.Collection) ([]json.RawMessage, error)
	Put(ctx context.Context, c domain.Collection, record domain.Record) error
}

var _ Store = (*store.Store)(nil)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the default Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep skips every delay.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type Option func(*Service)

func WithSleeper(sl Sleeper) Option {
	return func(s *Service) { s.sleep = sl }
}

// WithRand sets the random source for delays and failure draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service is the simulated remote facade over a Store.
type Service struct {
	store   Store
	cfg     Config
	sleep   Sleeper
	metrics *Metrics
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func New(st Store, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:  st,
		cfg:    cfg,
		sleep:  ContextSleep,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Fetch waits a fetch delay and returns every record in c. Fetch never
// injects a failure; store errors pass through.
func (s *Service) Fetch(ctx context.Context, c domain.Collection) ([]json.RawMessage, error) {
	s.metrics.Calls.WithLabelValues(opFetch, string(c)).Inc()
	if err := s.wait(ctx, opFetch, s.cfg.FetchDelay); err != nil {
		s.metrics.Failures.WithLabelValues(opFetch, string(c)).Inc()
		return nil, err
	}
	out, err := s.store.GetAll(ctx, c)
	if err != nil {
		s.metrics.Failures.WithLabelValues(opFetch, string(c)).Inc()
		return nil, fmt.Errorf("fetching %s: %w", c, err)
	}
	return out, nil
}

// Update waits an update delay and then writes record, unless the injected
// failure fires, in which case nothing is written. Updates are never
// retried.
func (s *Service) Update(ctx context.Context, c domain.Collection, record domain.Record) error {
	s.metrics.Calls.WithLabelValues(opUpdate, string(c)).Inc()
	if err := s.wait(ctx, opUpdate, s.cfg.UpdateDelay); err != nil {
		s.metrics.Failures.WithLabelValues(opUpdate, string(c)).Inc()
		return err
	}
	if s.shouldFail() {
		s.metrics.Failures.WithLabelValues(opUpdate, string(c)).Inc()
		s.logger.Debug("injected update failure", "collection", string(c), "id", record.RecordID())
		return fmt.Errorf("updating %s/%s: %w", c, record.RecordID(), ErrSimulatedTransientFailure)
	}
	if err := s.store.Put(ctx, c, record); err != nil {
		s.metrics.Failures.WithLabelValues(opUpdate, string(c)).Inc()
		return fmt.Errorf("updating %s/%s: %w", c, record.RecordID(), err)
	}
	return nil
}

func (s *Service) wait(ctx context.Context, op string, b Band) error {
	d := s.delay(b)
	s.metrics.Latency.WithLabelValues(op).Observe(d.Seconds())
	return s.sleep(ctx, d)
}

func (s *Service) delay(b Band) time.Duration {
	if b.Max <= b.Min {
		return b.Min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return b.Min + time.Duration(s.rng.Int63n(int64(b.Max-b.Min)+1))
}

func (s *Service) shouldFail() bool {
	if s.cfg.FailureRate <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.cfg.FailureRate
}

// FetchAs is Fetch with the records decoded as T.
func FetchAs[T any](ctx context.Context, s *Service, c domain.Collection) ([]T, error) {
	payloads, err := s.Fetch(ctx, c)
	if err != nil {
		return nil, err
	}
	return store.Decode[T](c, payloads)
}
