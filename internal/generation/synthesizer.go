// Package generation synthesizes internally consistent business metrics.
//
// Every domain generator follows the same shape: a base value is scaled to
// the period length, multiplied by a quarterly seasonal effect, one or more
// linear trend factors and a per-record variation factor, then rounded.
// Dependent fields are derived from computed fields, and component
// breakdowns are normalized so they sum exactly to their totals.
package generation

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/shopspring/decimal"
)

// Seasonality holds one multiplier per calendar quarter, Q1 first.
type Seasonality [4]float64

// Synthesizer generates metric series. It is safe for concurrent use; calls
// are serialized on the shared random source.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSynthesizer creates a Synthesizer drawing from rng and anchoring series
// at now(). A nil now uses time.Now.
func NewSynthesizer(rng *rand.Rand, now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rng: rng, now: now}
}

// point is one slot of a series before any metric is computed.
type point struct {
	date     string
	seasonal float64
	progress float64
}

func (s *Synthesizer) points(g domain.Granularity, count int, season Seasonality) []point {
	dates := GenerateDates(g, count, s.now())
	out := make([]point, len(dates))
	for i, d := range dates {
		out[i] = point{
			date:     d.Format(domain.DateLayout),
			seasonal: season[quarterIndex(d)],
			progress: timeProgress(i, count),
		}
	}
	return out
}

func quarterIndex(d time.Time) int {
	return (int(d.Month()) - 1) / 3
}

func timeProgress(i, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(i) / float64(count)
}

// uniform draws from [lo, hi). Callers hold s.mu.
func (s *Synthesizer) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// growth is a rising trend factor 1 + progress*U(lo, hi).
func (s *Synthesizer) growth(progress, lo, hi float64) float64 {
	return 1 + progress*s.uniform(lo, hi)
}

// decline is a falling trend factor 1 - progress*U(lo, hi).
func (s *Synthesizer) decline(progress, lo, hi float64) float64 {
	return 1 - progress*s.uniform(lo, hi)
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// splitTotal divides total proportionally to weights. Every component but
// the one at remainder is rounded; that one absorbs the rounding difference
// so the parts sum to total exactly.
func splitTotal(total int64, weights []float64, remainder int) []int64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	parts := make([]int64, len(weights))
	if sum <= 0 {
		parts[remainder] = total
		return parts
	}
	var assigned int64
	for i, w := range weights {
		if i == remainder {
			continue
		}
		parts[i] = roundInt(float64(total) * w / sum)
		assigned += parts[i]
	}
	parts[remainder] = total - assigned
	return parts
}
