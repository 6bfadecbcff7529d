package facade

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments facade calls.
type Metrics struct {
	Calls    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics creates the facade collectors and registers them on reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "execview",
			Subsystem: "facade",
			Name:      "calls_total",
			Help:      "Facade calls by operation and collection.",
		}, []string{"operation", "collection"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "execview",
			Subsystem: "facade",
			Name:      "failures_total",
			Help:      "Failed facade calls by operation and collection, simulated or not.",
		}, []string{"operation", "collection"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "execview",
			Subsystem: "facade",
			Name:      "simulated_latency_seconds",
			Help:      "Injected latency per facade call.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 2},
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.Calls, m.Failures, m.Latency)
	}
	return m
}

// Report logs every non-zero counter gathered from g at debug level, one
// record per label set.
func Report(ctx context.Context, logger *slog.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			if m.GetCounter() == nil || m.GetCounter().GetValue() == 0 {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			logger.DebugContext(ctx, "facade metric",
				"name", fam.GetName(),
				"labels", strings.Join(labels, ","),
				"value", m.GetCounter().GetValue(),
			)
		}
	}
	return nil
}
