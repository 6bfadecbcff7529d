package domain

import "math"

type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

type MetricFormat string

const (
	FormatNumber     MetricFormat = "number"
	FormatCurrency   MetricFormat = "currency"
	FormatPercentage MetricFormat = "percentage"
)

// Metric is a named value, used for breakdowns.
type Metric struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Value  float64      `json:"value"`
	Format MetricFormat `json:"format"`
}

// MetricWithTrend compares the latest value of a KPI with the previous period.
type MetricWithTrend struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Value            float64        `json:"value"`
	PreviousValue    float64        `json:"previousValue"`
	ChangePercentage float64        `json:"changePercentage"`
	Trend            TrendDirection `json:"trend"`
	Format           MetricFormat   `json:"format"`
}

// PercentChange returns the change from previous to current in percent,
// rounded to one decimal. A zero previous value yields 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

// TrendOf classifies a percentage change.
func TrendOf(change float64) TrendDirection {
	switch {
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

func NewMetricWithTrend(id, name string, current, previous float64, format MetricFormat) MetricWithTrend {
	change := PercentChange(current, previous)
	return MetricWithTrend{
		ID:               id,
		Name:             name,
		Value:            current,
		PreviousValue:    previous,
		ChangePercentage: change,
		Trend:            TrendOf(change),
		Format:           format,
	}
}

// Summary is the KPI view of a snapshot: headline metrics per domain plus
// the breakdowns of the latest period.
type Summary struct {
	Granularity Granularity       `json:"granularity"`
	KPIs        []MetricWithTrend `json:"kpis"`
	Expenses    []Metric          `json:"expensesByCategory"`
	Regions     []Metric          `json:"salesByRegion"`
	Departments []Metric          `json:"headcountByDepartment"`
	Unread      int               `json:"unreadNotifications"`
}

// lastTwo returns the indexes of the latest and previous records. When the
// series has a single record both point at it.
func lastTwo(n int) (cur, prev int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	cur = n - 1
	prev = cur
	if n > 1 {
		prev = n - 2
	}
	return cur, prev, true
}

// BuildSummary derives the KPI summary from a snapshot.
func BuildSummary(s *Snapshot) Summary {
	sum := Summary{Granularity: s.Granularity, Unread: CountUnread(s.Notifications)}

	if c, p, ok := lastTwo(len(s.Financial)); ok {
		cur, prev := s.Financial[c], s.Financial[p]
		sum.KPIs = append(sum.KPIs,
			NewMetricWithTrend("revenue", "Revenue", float64(cur.Revenue), float64(prev.Revenue), FormatCurrency),
			NewMetricWithTrend("expenses", "Expenses", float64(cur.Expenses), float64(prev.Expenses), FormatCurrency),
			NewMetricWithTrend("profitMargin", "Profit Margin", cur.ProfitMargin, prev.ProfitMargin, FormatPercentage),
			NewMetricWithTrend("cashFlow", "Cash Flow", float64(cur.CashFlow), float64(prev.CashFlow), FormatCurrency),
		)
		sum.Expenses = []Metric{
			{ID: "operating", Name: "Operating", Value: float64(cur.OperatingCosts), Format: FormatCurrency},
			{ID: "marketing", Name: "Marketing", Value: float64(cur.MarketingCosts), Format: FormatCurrency},
			{ID: "rd", Name: "R&D", Value: float64(cur.RDCosts), Format: FormatCurrency},
			{ID: "admin", Name: "Admin", Value: float64(cur.AdminCosts), Format: FormatCurrency},
		}
	}

	if c, p, ok := lastTwo(len(s.Sales)); ok {
		cur, prev := s.Sales[c], s.Sales[p]
		sum.KPIs = append(sum.KPIs,
			NewMetricWithTrend("closedDeals", "Closed Deals", float64(cur.ClosedDeals), float64(prev.ClosedDeals), FormatNumber),
			NewMetricWithTrend("conversionRate", "Conversion Rate", cur.ConversionRate, prev.ConversionRate, FormatPercentage),
			NewMetricWithTrend("averageDealSize", "Avg Deal Size", float64(cur.AverageDealSize), float64(prev.AverageDealSize), FormatCurrency),
			NewMetricWithTrend("pipeline", "Pipeline", float64(cur.Pipeline), float64(prev.Pipeline), FormatCurrency),
		)
		r := cur.RegionData
		sum.Regions = []Metric{
			{ID: "northAmerica", Name: "North America", Value: r.NorthAmerica, Format: FormatPercentage},
			{ID: "europe", Name: "Europe", Value: r.Europe, Format: FormatPercentage},
			{ID: "asiaPacific", Name: "Asia Pacific", Value: r.AsiaPacific, Format: FormatPercentage},
			{ID: "latinAmerica", Name: "Latin America", Value: r.LatinAmerica, Format: FormatPercentage},
		}
	}

	if c, p, ok := lastTwo(len(s.Operations)); ok {
		cur, prev := s.Operations[c], s.Operations[p]
		sum.KPIs = append(sum.KPIs,
			NewMetricWithTrend("productionEfficiency", "Production Efficiency", cur.ProductionEfficiency, prev.ProductionEfficiency, FormatPercentage),
			NewMetricWithTrend("inventoryLevel", "Inventory Level", float64(cur.InventoryLevel), float64(prev.InventoryLevel), FormatCurrency),
			NewMetricWithTrend("deliveryOnTime", "On-time Delivery", cur.DeliveryOnTime, prev.DeliveryOnTime, FormatPercentage),
			NewMetricWithTrend("qualityScore", "Quality Score", cur.QualityScore, prev.QualityScore, FormatPercentage),
		)
	}

	if c, p, ok := lastTwo(len(s.Customer)); ok {
		cur, prev := s.Customer[c], s.Customer[p]
		sum.KPIs = append(sum.KPIs,
			NewMetricWithTrend("satisfactionScore", "Satisfaction", cur.SatisfactionScore, prev.SatisfactionScore, FormatNumber),
			NewMetricWithTrend("churnRate", "Churn Rate", cur.ChurnRate, prev.ChurnRate, FormatPercentage),
			NewMetricWithTrend("customerLifetimeValue", "Lifetime Value", float64(cur.CustomerLifetimeValue), float64(prev.CustomerLifetimeValue), FormatCurrency),
			NewMetricWithTrend("supportTickets", "Support Tickets", float64(cur.SupportTickets), float64(prev.SupportTickets), FormatNumber),
		)
	}

	if c, p, ok := lastTwo(len(s.Employee)); ok {
		cur, prev := s.Employee[c], s.Employee[p]
		sum.KPIs = append(sum.KPIs,
			NewMetricWithTrend("headcount", "Headcount", float64(cur.Headcount), float64(prev.Headcount), FormatNumber),
			NewMetricWithTrend("productivityScore", "Productivity", cur.ProductivityScore, prev.ProductivityScore, FormatNumber),
			NewMetricWithTrend("engagementScore", "Engagement", cur.EngagementScore, prev.EngagementScore, FormatNumber),
			NewMetricWithTrend("retentionRate", "Retention", cur.RetentionRate, prev.RetentionRate, FormatPercentage),
		)
		d := cur.DepartmentData
		sum.Departments = []Metric{
			{ID: "engineering", Name: "Engineering", Value: float64(d.Engineering), Format: FormatNumber},
			{ID: "sales", Name: "Sales", Value: float64(d.Sales), Format: FormatNumber},
			{ID: "marketing", Name: "Marketing", Value: float64(d.Marketing), Format: FormatNumber},
			{ID: "operations", Name: "Operations", Value: float64(d.Operations), Format: FormatNumber},
			{ID: "support", Name: "Support", Value: float64(d.Support), Format: FormatNumber},
			{ID: "admin", Name: "Admin", Value: float64(d.Admin), Format: FormatNumber},
		}
	}

	return sum
}
