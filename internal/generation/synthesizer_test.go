package generation

import (
	"testing"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestSynthesizer(seed int64) *Synthesizer {
	return NewSynthesizer(NewSeededRNG(seed), func() time.Time { return fixedNow })
}

func TestSynthesizer_Deterministic(t *testing.T) {
	a := newTestSynthesizer(7).Series(domain.Monthly)
	b := newTestSynthesizer(7).Series(domain.Monthly)
	assert.Equal(t, a, b)
}

func TestSynthesizer_ZeroCount(t *testing.T) {
	s := newTestSynthesizer(1)
	assert.Empty(t, s.Financial(domain.Monthly, 0))
	assert.Empty(t, s.Sales(domain.Daily, 0))
	assert.Empty(t, s.Operations(domain.Weekly, 0))
	assert.Empty(t, s.Customer(domain.Quarterly, 0))
	assert.Empty(t, s.Employee(domain.Annually, 0))
}

func TestSynthesizer_IDsMatchDates(t *testing.T) {
	series := newTestSynthesizer(3).Series(domain.Weekly)

	require.Len(t, series.Financial, 26)
	for i, r := range series.Financial {
		assert.Equal(t, "fin-"+r.Date, r.ID)
		assert.Equal(t, "sales-"+r.Date, series.Sales[i].ID)
		assert.Equal(t, "ops-"+r.Date, series.Operations[i].ID)
		assert.Equal(t, "cust-"+r.Date, series.Customer[i].ID)
		assert.Equal(t, "emp-"+r.Date, series.Employee[i].ID)
	}
	assert.Equal(t, "2025-06-15", series.Financial[len(series.Financial)-1].Date)
}

func TestFinancial_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, g := range domain.AllGranularities {
			for _, r := range newTestSynthesizer(seed).Financial(g, g.SeriesLength()) {
				assert.Equal(t, r.Revenue-r.Expenses, r.Profit, r.ID)
				assert.Equal(t, r.Expenses, r.OperatingCosts+r.MarketingCosts+r.RDCosts+r.AdminCosts, r.ID)
				assert.Positive(t, r.AdminCosts, r.ID)
				if r.Revenue != 0 {
					assert.Equal(t, roundTo(float64(r.Profit)/float64(r.Revenue)*100, 2), r.ProfitMargin, r.ID)
				}
			}
		}
	}
}

func TestFinancial_MonthlyRevenueEnvelope(t *testing.T) {
	// seasonal [0.85, 1.25] x growth [1, 1+11/12*0.08] x variation [0.92, 1.08]
	lo := baseRevenue * 0.85 * 0.92
	hi := baseRevenue * 1.25 * (1 + 11.0/12*0.08) * 1.08

	for seed := int64(1); seed <= 50; seed++ {
		records := newTestSynthesizer(seed).Financial(domain.Monthly, 12)
		require.Len(t, records, 12)
		for _, r := range records {
			assert.GreaterOrEqual(t, float64(r.Revenue), lo-1, r.ID)
			assert.LessOrEqual(t, float64(r.Revenue), hi+1, r.ID)
		}
	}
}

func TestSales_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, r := range newTestSynthesizer(seed).Sales(domain.Monthly, 12) {
			assert.InDelta(t, 100.0, r.RegionData.Total(), 1e-9, r.ID)
			assert.Positive(t, r.RegionData.LatinAmerica, r.ID)

			require.Len(t, r.TopProducts, topProductCount, r.ID)
			names := map[string]bool{}
			for i, p := range r.TopProducts {
				names[p.Name] = true
				if i > 0 {
					assert.GreaterOrEqual(t, r.TopProducts[i-1].Revenue, p.Revenue, r.ID)
				}
			}
			assert.Len(t, names, topProductCount, "products must be distinct")

			if r.NewDeals > 0 {
				assert.InDelta(t, float64(r.ClosedDeals)/float64(r.NewDeals)*100, r.ConversionRate, 0.05+1e-9)
			}
			assert.GreaterOrEqual(t, r.SalesCycle, int64(28))
			assert.LessOrEqual(t, r.SalesCycle, int64(42))
		}
	}
}

func TestSales_DailyConversionWithoutDeals(t *testing.T) {
	// Daily deal counts can round to zero; conversion must stay finite.
	for _, r := range newTestSynthesizer(11).Sales(domain.Daily, 60) {
		if r.NewDeals == 0 {
			assert.Zero(t, r.ConversionRate, r.ID)
		}
	}
}

func TestOperations_Clamps(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		for _, g := range domain.AllGranularities {
			for _, r := range newTestSynthesizer(seed).Operations(g, g.SeriesLength()) {
				assert.LessOrEqual(t, r.ProductionEfficiency, 98.0)
				assert.LessOrEqual(t, r.DeliveryOnTime, 99.0)
				assert.LessOrEqual(t, r.QualityScore, 99.0)
				assert.GreaterOrEqual(t, r.DefectRate, 0.5)
				assert.LessOrEqual(t, r.CapacityUtilization, 95.0)
				assert.Positive(t, r.InventoryTurnover)
			}
		}
	}
}

func TestCustomer_Clamps(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		for _, r := range newTestSynthesizer(seed).Customer(domain.Monthly, 12) {
			assert.LessOrEqual(t, r.SatisfactionScore, 9.5)
			assert.LessOrEqual(t, r.NPS, int64(70))
			assert.GreaterOrEqual(t, r.ChurnRate, 0.8)
			assert.Positive(t, r.ActiveCustomers)
			assert.Positive(t, r.CustomerLifetimeValue)
		}
	}
}

func TestEmployee_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		for _, g := range domain.AllGranularities {
			for _, r := range newTestSynthesizer(seed).Employee(g, g.SeriesLength()) {
				assert.Equal(t, r.Headcount, r.DepartmentData.Total(), r.ID)
				assert.Positive(t, r.DepartmentData.Operations, r.ID)
				assert.GreaterOrEqual(t, r.TurnoverRate, 0.9)
				assert.LessOrEqual(t, r.ProductivityScore, 9.0)
				assert.LessOrEqual(t, r.EngagementScore, 9.0)
				assert.InDelta(t, 100-r.TurnoverRate*12, r.RetentionRate, 0.65, r.ID)
			}
		}
	}
}

func TestSplitTotal_RemainderAbsorbsRounding(t *testing.T) {
	parts := splitTotal(100, []float64{1, 1, 1}, 2)
	assert.Equal(t, []int64{33, 33, 34}, parts)

	parts = splitTotal(7, []float64{0, 0}, 1)
	assert.Equal(t, []int64{0, 7}, parts)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.24, roundTo(1.235, 2))
	assert.Equal(t, 2.5, roundTo(2.45, 1))
	assert.Equal(t, -1.3, roundTo(-1.25, 1))
}

func TestDataset_Shape(t *testing.T) {
	ds := newTestSynthesizer(5).Dataset()

	require.Len(t, ds.Series, len(domain.AllGranularities))
	for _, g := range domain.AllGranularities {
		assert.Len(t, ds.Series[g].Financial, g.SeriesLength(), g)
		assert.Len(t, ds.Series[g].Employee, g.SeriesLength(), g)
	}
	require.Len(t, ds.Notifications, 7)
	assert.Equal(t, 4, domain.CountUnread(ds.Notifications))
	assert.Equal(t, fixedNow.Add(-30*time.Minute), ds.Notifications[0].Timestamp)

	require.Len(t, ds.Users, 4)
	require.Len(t, ds.Settings, 4)
	for i, u := range ds.Users {
		assert.Equal(t, u.ID, ds.Settings[i].ID)
		assert.Equal(t, domain.ThemeLight, ds.Settings[i].Theme)
		assert.Equal(t, domain.Monthly, ds.Settings[i].DefaultTimePeriod)
	}
}
