package generation

import (
	"math"

	"github.com/alexanderramin/execview/internal/domain"
)

const (
	baseSatisfactionScore    = 7.8
	baseNPS                  = 42
	baseChurnRate            = 2.2
	baseCustomerLifetimeVal  = 24_000
	baseActiveCustomers      = 1_250
	baseNewCustomers         = 85
	baseSupportTickets       = 320
	baseSupportResponseHours = 6.5
	baseAcquisitionCost      = 2_800

	// Acquisition cost improves by a fixed 2% over the series.
	acquisitionCostImprovement = 0.02
)

var customerSeasonality = Seasonality{1.0, 0.98, 0.95, 1.08}

// Customer generates count customer records at cadence g.
func (s *Synthesizer) Customer(g domain.Granularity, count int) []domain.CustomerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.points(g, count, customerSeasonality)
	out := make([]domain.CustomerRecord, 0, len(points))
	for _, p := range points {
		customers := s.growth(p.progress, 0.06, 0.09)
		satisfaction := s.growth(p.progress, 0.01, 0.03)
		churn := s.decline(p.progress, 0.03, 0.05)
		responseTime := s.decline(p.progress, 0.05, 0.08)
		variation := s.uniform(0.96, 1.04)

		countMult := g.PeriodMultiplier() * p.seasonal * customers * variation

		out = append(out, domain.CustomerRecord{
			ID:                      domain.MetricID(domain.CustomerIDPrefix, p.date),
			Date:                    p.date,
			SatisfactionScore:       roundTo(math.Min(9.5, baseSatisfactionScore*satisfaction*variation), 1),
			NPS:                     roundInt(math.Min(70, baseNPS*satisfaction*variation)),
			ChurnRate:               roundTo(math.Max(0.8, baseChurnRate*churn*variation), 1),
			CustomerLifetimeValue:   roundInt(baseCustomerLifetimeVal * satisfaction / churn * variation),
			ActiveCustomers:         roundInt(baseActiveCustomers * customers * variation),
			NewCustomers:            roundInt(baseNewCustomers * countMult),
			SupportTickets:          roundInt(baseSupportTickets * countMult),
			SupportResponseTime:     roundTo(baseSupportResponseHours*responseTime*variation, 1),
			CustomerAcquisitionCost: roundInt(baseAcquisitionCost * (1 - p.progress*acquisitionCostImprovement) * variation),
		})
	}
	return out
}
