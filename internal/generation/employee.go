package generation

import (
	"math"

	"github.com/alexanderramin/execview/internal/domain"
)

const (
	baseHeadcount         = 180
	baseNewHires          = 6
	baseTurnoverRate      = 1.8
	baseProductivityScore = 7.4
	baseEngagementScore   = 7.2
	baseTrainingCost      = 35_000
	baseAverageTenure     = 22
)

// Department baselines sum to baseHeadcount.
var baseDepartments = domain.DepartmentData{
	Engineering: 70,
	Sales:       35,
	Marketing:   20,
	Operations:  25,
	Support:     20,
	Admin:       10,
}

// Hiring is more seasonal than the other metrics.
var hiringSeasonality = Seasonality{1.2, 0.8, 1.1, 0.9}

// departmentOperations is the index of the operations department in the
// weights passed to splitTotal. It absorbs rounding differences.
const departmentOperations = 3

// Employee generates count employee records at cadence g.
func (s *Synthesizer) Employee(g domain.Granularity, count int) []domain.EmployeeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.points(g, count, hiringSeasonality)
	out := make([]domain.EmployeeRecord, 0, len(points))
	for _, p := range points {
		headcountGrowth := s.growth(p.progress, 0.05, 0.08)
		productivity := s.growth(p.progress, 0.02, 0.04)
		engagement := s.growth(p.progress, 0.01, 0.03)
		turnover := s.decline(p.progress, 0.02, 0.04)
		variation := s.uniform(0.97, 1.03)

		headcount := roundInt(baseHeadcount * headcountGrowth * variation)
		hiringMult := g.PeriodMultiplier() * p.seasonal * headcountGrowth * variation
		turnoverRate := math.Max(0.9, baseTurnoverRate*turnover*variation)

		out = append(out, domain.EmployeeRecord{
			ID:                domain.MetricID(domain.EmployeeIDPrefix, p.date),
			Date:              p.date,
			Headcount:         headcount,
			NewHires:          roundInt(baseNewHires * hiringMult),
			TurnoverRate:      roundTo(turnoverRate, 1),
			ProductivityScore: roundTo(math.Min(9.0, baseProductivityScore*productivity*variation), 1),
			EngagementScore:   roundTo(math.Min(9.0, baseEngagementScore*engagement*variation), 1),
			RetentionRate:     roundTo(100-turnoverRate*12, 1),
			TrainingCost:      roundInt(baseTrainingCost * g.PeriodMultiplier() * headcountGrowth * variation),
			AverageTenure:     roundTo(baseAverageTenure*(1+p.progress*0.1)*variation, 1),
			DepartmentData:    s.departments(headcount, headcountGrowth),
		})
	}
	return out
}

// departments grows each department with its own perturbation, then rescales
// the result so the departments sum exactly to headcount.
func (s *Synthesizer) departments(headcount int64, growth float64) domain.DepartmentData {
	weights := []float64{
		float64(baseDepartments.Engineering) * growth * s.uniform(0.95, 1.05),
		float64(baseDepartments.Sales) * growth * s.uniform(0.98, 1.02),
		float64(baseDepartments.Marketing) * growth * s.uniform(0.97, 1.03),
		float64(baseDepartments.Operations) * growth * s.uniform(0.93, 1.07),
		float64(baseDepartments.Support) * growth * s.uniform(0.96, 1.04),
		float64(baseDepartments.Admin) * growth * s.uniform(0.90, 1.10),
	}
	parts := splitTotal(headcount, weights, departmentOperations)
	return domain.DepartmentData{
		Engineering: parts[0],
		Sales:       parts[1],
		Marketing:   parts[2],
		Operations:  parts[3],
		Support:     parts[4],
		Admin:       parts[5],
	}
}
