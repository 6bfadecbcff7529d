package generation

import (
	"math"

	"github.com/alexanderramin/execview/internal/domain"
)

const (
	baseProductionEfficiency = 87
	baseInventoryLevel       = 450_000
	baseInventoryTurnover    = 5.2
	baseDeliveryOnTime       = 92
	baseAvgDeliveryTime      = 3.5
	baseQualityScore         = 94
	baseDefectRate           = 2.8
	baseCapacityUtilization  = 82
	baseMaintenanceCost      = 85_000
)

// Operations is less seasonal than sales.
var operationsSeasonality = Seasonality{1.0, 0.95, 0.98, 1.05}

// Operations generates count operations records at cadence g.
func (s *Synthesizer) Operations(g domain.Granularity, count int) []domain.OperationsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.points(g, count, operationsSeasonality)
	out := make([]domain.OperationsRecord, 0, len(points))
	for _, p := range points {
		efficiency := s.growth(p.progress, 0.03, 0.05)
		quality := s.growth(p.progress, 0.02, 0.04)
		defects := s.decline(p.progress, 0.04, 0.07)
		variation := s.uniform(0.97, 1.03)

		costMult := g.PeriodMultiplier() * p.seasonal * variation

		out = append(out, domain.OperationsRecord{
			ID:                   domain.MetricID(domain.OperationsIDPrefix, p.date),
			Date:                 p.date,
			ProductionEfficiency: roundTo(math.Min(98, baseProductionEfficiency*efficiency*variation), 1),
			InventoryLevel:       roundInt(baseInventoryLevel * costMult),
			InventoryTurnover:    roundTo(baseInventoryTurnover*efficiency*variation, 2),
			DeliveryOnTime:       roundTo(math.Min(99, baseDeliveryOnTime*efficiency*variation), 1),
			AverageDeliveryTime:  roundTo(baseAvgDeliveryTime/efficiency*variation, 1),
			QualityScore:         roundTo(math.Min(99, baseQualityScore*quality*variation), 1),
			DefectRate:           roundTo(math.Max(0.5, baseDefectRate*defects*variation), 1),
			CapacityUtilization:  roundTo(math.Min(95, baseCapacityUtilization*efficiency*variation), 1),
			MaintenanceCost:      roundInt(baseMaintenanceCost * costMult),
		})
	}
	return out
}
