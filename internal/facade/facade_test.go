package facade_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/store"
	"github.com/alexanderramin/execview/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu   sync.Mutex
	puts int
	err  error
}

func (c *countingStore) GetAll(context.Context, domain.Collection) ([]json.RawMessage, error) {
	return []json.RawMessage{json.RawMessage(`{"id":"n1"}`)}, c.err
}

func (c *countingStore) Put(context.Context, domain.Collection, domain.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	return c.err
}

type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

func TestUpdate_FailureRateAndNoMutationOnFailure(t *testing.T) {
	st := &countingStore{}
	m := facade.NewMetrics(prometheus.NewRegistry())
	svc := facade.New(st, facade.DefaultConfig(),
		facade.WithSleeper(facade.NoSleep),
		facade.WithRand(rand.New(rand.NewSource(42))),
		facade.WithMetrics(m),
	)
	ctx := context.Background()

	const calls = 1000
	failures := 0
	for i := 0; i < calls; i++ {
		err := svc.Update(ctx, domain.CollectionNotifications, testutil.NewNotification("n1"))
		if err != nil {
			require.ErrorIs(t, err, facade.ErrSimulatedTransientFailure)
			failures++
		}
	}

	// Expected 50; the bounds are several standard deviations wide.
	assert.GreaterOrEqual(t, failures, 25)
	assert.LessOrEqual(t, failures, 80)
	assert.Equal(t, calls-failures, st.puts, "a failed update must not touch the store")

	assert.Equal(t, float64(calls), promtest.ToFloat64(m.Calls.WithLabelValues("update", "notifications")))
	assert.Equal(t, float64(failures), promtest.ToFloat64(m.Failures.WithLabelValues("update", "notifications")))
}

func TestUpdate_ZeroFailureRateNeverFails(t *testing.T) {
	st := &countingStore{}
	cfg := facade.DefaultConfig()
	cfg.FailureRate = 0
	svc := facade.New(st, cfg, facade.WithSleeper(facade.NoSleep))

	for i := 0; i < 200; i++ {
		require.NoError(t, svc.Update(context.Background(), domain.CollectionNotifications, testutil.NewNotification("n1")))
	}
	assert.Equal(t, 200, st.puts)
}

func TestFetch_NeverInjectsFailure(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.FailureRate = 1
	svc := facade.New(&countingStore{}, cfg, facade.WithSleeper(facade.NoSleep))

	for i := 0; i < 100; i++ {
		got, err := svc.Fetch(context.Background(), domain.CollectionNotifications)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
}

func TestFetch_PropagatesStoreErrors(t *testing.T) {
	svc := facade.New(&countingStore{err: store.ErrStoreUnavailable}, facade.DefaultConfig(),
		facade.WithSleeper(facade.NoSleep))

	_, err := svc.Fetch(context.Background(), domain.CollectionFinancial)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestDelays_StayWithinBands(t *testing.T) {
	rec := &recordingSleeper{}
	cfg := facade.DefaultConfig()
	cfg.FailureRate = 0
	svc := facade.New(&countingStore{}, cfg,
		facade.WithSleeper(rec.sleep),
		facade.WithRand(rand.New(rand.NewSource(1))),
	)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, err := svc.Fetch(ctx, domain.CollectionFinancial)
		require.NoError(t, err)
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, svc.Update(ctx, domain.CollectionNotifications, testutil.NewNotification("n1")))
	}

	require.Len(t, rec.delays, 200)
	for _, d := range rec.delays[:100] {
		assert.GreaterOrEqual(t, d, cfg.FetchDelay.Min)
		assert.LessOrEqual(t, d, cfg.FetchDelay.Max)
	}
	for _, d := range rec.delays[100:] {
		assert.GreaterOrEqual(t, d, cfg.UpdateDelay.Min)
		assert.LessOrEqual(t, d, cfg.UpdateDelay.Max)
	}
}

func TestFetch_CancelledContextAbortsDelay(t *testing.T) {
	svc := facade.New(&countingStore{}, facade.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.Fetch(ctx, domain.CollectionFinancial)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestFetchAs_DecodesRealStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, s, domain.CollectionNotifications, []domain.Notification{
		testutil.NewNotification("n1"),
		testutil.NewNotification("n2", testutil.WithRead(true)),
	}))
	svc := facade.New(s, facade.DefaultConfig(), facade.WithSleeper(facade.NoSleep))

	got, err := facade.FetchAs[domain.Notification](ctx, svc, domain.CollectionNotifications)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].Read)
}

func TestUpdate_WrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	cfg := facade.DefaultConfig()
	cfg.FailureRate = 0
	svc := facade.New(&countingStore{err: boom}, cfg, facade.WithSleeper(facade.NoSleep))

	err := svc.Update(context.Background(), domain.CollectionNotifications, testutil.NewNotification("n1"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, facade.ErrSimulatedTransientFailure)
}

func TestReport_LogsNonZeroCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := facade.New(&countingStore{}, facade.Config{},
		facade.WithSleeper(facade.NoSleep),
		facade.WithMetrics(facade.NewMetrics(reg)),
	)
	_, err := svc.Fetch(context.Background(), domain.CollectionUsers)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.NoError(t, facade.Report(context.Background(), logger, reg))

	out := buf.String()
	assert.Contains(t, out, `"name":"execview_facade_calls_total"`)
	assert.Contains(t, out, "collection=users")
	assert.NotContains(t, out, "failures_total")
}
