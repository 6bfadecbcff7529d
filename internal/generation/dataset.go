package generation

import "github.com/alexanderramin/execview/internal/domain"

// Series generates every metric domain at cadence g with g's seeded length.
func (s *Synthesizer) Series(g domain.Granularity) domain.Series {
	n := g.SeriesLength()
	return domain.Series{
		Financial:  s.Financial(g, n),
		Sales:      s.Sales(g, n),
		Operations: s.Operations(g, n),
		Customer:   s.Customer(g, n),
		Employee:   s.Employee(g, n),
	}
}

// Metrics generates the metric series for every cadence.
func (s *Synthesizer) Metrics() map[domain.Granularity]domain.Series {
	out := make(map[domain.Granularity]domain.Series, len(domain.AllGranularities))
	for _, g := range domain.AllGranularities {
		out[g] = s.Series(g)
	}
	return out
}

// Dataset generates the full first-run dataset: metric series for every
// cadence, the notification feed, and the reference users and settings.
func (s *Synthesizer) Dataset() domain.Dataset {
	users := DefaultUsers()
	settings := make([]domain.Settings, len(users))
	for i, u := range users {
		settings[i] = DefaultSettings(u.ID)
	}
	return domain.Dataset{
		Series:        s.Metrics(),
		Notifications: SeedNotifications(s.now()),
		Users:         users,
		Settings:      settings,
	}
}
