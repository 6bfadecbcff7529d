package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGranularity is returned when a granularity string is not one of
// the supported reporting cadences.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Granularity is the reporting cadence of a metric series.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Annually  Granularity = "annually"
)

// AllGranularities lists every supported cadence from finest to coarsest.
var AllGranularities = []Granularity{Daily, Weekly, Monthly, Quarterly, Annually}

// ParseGranularity converts user input into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownGranularity)
	}
	return g, nil
}

// Valid reports whether g is a supported cadence.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Quarterly, Annually:
		return true
	}
	return false
}

func (g Granularity) String() string { return string(g) }

// PeriodMultiplier scales a monthly base value to the length of one period.
func (g Granularity) PeriodMultiplier() float64 {
	switch g {
	case Daily:
		return 1.0 / 30
	case Weekly:
		return 7.0 / 30
	case Quarterly:
		return 3
	case Annually:
		return 12
	default:
		return 1
	}
}

// SeriesLength is the number of points generated for the cadence when the
// dataset is seeded: 60 days, 26 weeks, 12 months, 8 quarters, 5 years.
func (g Granularity) SeriesLength() int {
	switch g {
	case Daily:
		return 60
	case Weekly:
		return 26
	case Quarterly:
		return 8
	case Annually:
		return 5
	default:
		return 12
	}
}
