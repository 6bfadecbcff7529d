package generation

import "github.com/alexanderramin/execview/internal/domain"

// Monthly baselines for a mid-sized tech company.
const (
	baseRevenue  = 2_500_000
	baseExpenses = 1_800_000

	// Expenses grow at 97% of the revenue rate.
	expenseEfficiency = 0.97
)

var financialSeasonality = Seasonality{1.0, 0.85, 0.9, 1.25}

// Financial generates count financial records at cadence g.
func (s *Synthesizer) Financial(g domain.Granularity, count int) []domain.FinancialRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.points(g, count, financialSeasonality)
	out := make([]domain.FinancialRecord, 0, len(points))
	for _, p := range points {
		growth := s.growth(p.progress, 0.05, 0.08)
		variation := s.uniform(0.92, 1.08)
		mult := g.PeriodMultiplier() * p.seasonal * growth * variation

		revenue := roundInt(baseRevenue * mult)
		expenses := roundInt(baseExpenses * mult * expenseEfficiency)
		profit := revenue - expenses

		var margin float64
		if revenue != 0 {
			margin = roundTo(float64(profit)/float64(revenue)*100, 2)
		}

		// operating, marketing, R&D, admin; admin takes the remainder.
		costs := splitTotal(expenses, []float64{
			s.uniform(0.55, 0.65),
			s.uniform(0.15, 0.25),
			s.uniform(0.15, 0.20),
			s.uniform(0.03, 0.08),
		}, 3)

		out = append(out, domain.FinancialRecord{
			ID:             domain.MetricID(domain.FinancialIDPrefix, p.date),
			Date:           p.date,
			Revenue:        revenue,
			Expenses:       expenses,
			Profit:         profit,
			ProfitMargin:   margin,
			CashFlow:       roundInt(float64(profit) * s.uniform(1.1, 1.3)),
			OperatingCosts: costs[0],
			MarketingCosts: costs[1],
			RDCosts:        costs[2],
			AdminCosts:     costs[3],
		})
	}
	return out
}
