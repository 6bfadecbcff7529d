package domain

import (
	"slices"
	"time"
)

// Series holds one cadence's worth of records for each metric domain.
type Series struct {
	Financial  []FinancialRecord  `json:"financial"`
	Sales      []SalesRecord      `json:"sales"`
	Operations []OperationsRecord `json:"operations"`
	Customer   []CustomerRecord   `json:"customer"`
	Employee   []EmployeeRecord   `json:"employee"`
}

// Dataset is everything seeded into the store on first run.
type Dataset struct {
	Series        map[Granularity]Series
	Notifications []Notification
	Users         []User
	Settings      []Settings
}

// Snapshot is a reader's private copy of the dashboard at one cadence.
type Snapshot struct {
	Series
	Granularity   Granularity    `json:"granularity"`
	Notifications []Notification `json:"notifications"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// Clone returns a deep copy so callers can mutate freely.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Series: Series{
			Financial:  slices.Clone(s.Financial),
			Sales:      make([]SalesRecord, len(s.Sales)),
			Operations: slices.Clone(s.Operations),
			Customer:   slices.Clone(s.Customer),
			Employee:   slices.Clone(s.Employee),
		},
		Granularity:   s.Granularity,
		Notifications: slices.Clone(s.Notifications),
		LastUpdated:   s.LastUpdated,
	}
	for i, r := range s.Sales {
		r.TopProducts = slices.Clone(r.TopProducts)
		out.Sales[i] = r
	}
	return out
}
