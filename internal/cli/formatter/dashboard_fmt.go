package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
)

// FormatKPIs renders KPI cards as a table of value, previous value and
// trend.
func FormatKPIs(kpis []domain.MetricWithTrend) string {
	rows := make([][]string, 0, len(kpis))
	for _, k := range kpis {
		rows = append(rows, []string{
			k.Name,
			Value(k.Value, k.Format),
			Dim(Value(k.PreviousValue, k.Format)),
			TrendIndicator(k.Trend, k.ChangePercentage),
		})
	}
	return RenderTable([]string{"METRIC", "CURRENT", "PREVIOUS", "CHANGE"}, rows, 1, 2, 3)
}

func formatBreakdown(title string, metrics []domain.Metric) string {
	if len(metrics) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Name, Value(m.Value, m.Format)})
	}
	return Header(title) + "\n" + RenderTable([]string{"NAME", "VALUE"}, rows, 1)
}

// FormatSummary renders the KPI summary with its breakdowns.
func FormatSummary(s domain.Summary) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Executive summary (%s)", s.Granularity)))
	b.WriteString("\n")
	if len(s.KPIs) == 0 {
		b.WriteString(Dim("No data.") + "\n")
		return b.String()
	}
	b.WriteString(FormatKPIs(s.KPIs))
	for _, part := range []string{
		formatBreakdown("Expenses by category", s.Expenses),
		formatBreakdown("Sales by region", s.Regions),
		formatBreakdown("Headcount by department", s.Departments),
	} {
		if part != "" {
			b.WriteString("\n" + part)
		}
	}
	b.WriteString(fmt.Sprintf("\n%s %d\n", Bold("Unread notifications:"), s.Unread))
	return b.String()
}

// FormatFinancial renders the financial series, oldest first.
func FormatFinancial(recs []domain.FinancialRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			Currency(float64(r.Revenue)),
			Currency(float64(r.Expenses)),
			Currency(float64(r.Profit)),
			Percent(r.ProfitMargin),
			Currency(float64(r.CashFlow)),
		})
	}
	return RenderTable([]string{"DATE", "REVENUE", "EXPENSES", "PROFIT", "MARGIN", "CASH FLOW"}, rows, 1, 2, 3, 4, 5)
}

func FormatSales(recs []domain.SalesRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		top := ""
		if len(r.TopProducts) > 0 {
			top = r.TopProducts[0].Name
		}
		rows = append(rows, []string{
			r.Date,
			Number(float64(r.NewDeals)),
			Number(float64(r.ClosedDeals)),
			Percent(r.ConversionRate),
			Currency(float64(r.AverageDealSize)),
			Currency(float64(r.Pipeline)),
			fmt.Sprintf("%dd", r.SalesCycle),
			top,
		})
	}
	return RenderTable([]string{"DATE", "NEW", "CLOSED", "CONV", "AVG DEAL", "PIPELINE", "CYCLE", "TOP PRODUCT"}, rows, 1, 2, 3, 4, 5, 6)
}

func FormatOperations(recs []domain.OperationsRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			Percent(r.ProductionEfficiency),
			Currency(float64(r.InventoryLevel)),
			Decimal(r.InventoryTurnover, 1),
			Percent(r.DeliveryOnTime),
			Decimal(r.QualityScore, 1),
			Percent(r.DefectRate),
			Percent(r.CapacityUtilization),
		})
	}
	return RenderTable([]string{"DATE", "EFFICIENCY", "INVENTORY", "TURNOVER", "ON TIME", "QUALITY", "DEFECTS", "CAPACITY"}, rows, 1, 2, 3, 4, 5, 6, 7)
}

func FormatCustomer(recs []domain.CustomerRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			Decimal(r.SatisfactionScore, 1),
			Number(float64(r.NPS)),
			Percent(r.ChurnRate),
			Number(float64(r.ActiveCustomers)),
			Number(float64(r.NewCustomers)),
			Currency(float64(r.CustomerLifetimeValue)),
			Number(float64(r.SupportTickets)),
		})
	}
	return RenderTable([]string{"DATE", "CSAT", "NPS", "CHURN", "ACTIVE", "NEW", "CLV", "TICKETS"}, rows, 1, 2, 3, 4, 5, 6, 7)
}

func FormatEmployee(recs []domain.EmployeeRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			Number(float64(r.Headcount)),
			Number(float64(r.NewHires)),
			Percent(r.TurnoverRate),
			Percent(r.RetentionRate),
			Decimal(r.EngagementScore, 1),
			Decimal(r.AverageTenure, 1) + "y",
		})
	}
	return RenderTable([]string{"DATE", "HEADCOUNT", "HIRES", "TURNOVER", "RETENTION", "ENGAGEMENT", "TENURE"}, rows, 1, 2, 3, 4, 5, 6)
}

// FormatNotifications renders the feed, unread entries in bold.
func FormatNotifications(ns []domain.Notification, now time.Time) string {
	if len(ns) == 0 {
		return Dim("No notifications.") + "\n"
	}
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		title := n.Title
		state := Dim("read")
		if !n.Read {
			title = Bold(title)
			state = StyleYellow.Render("new")
		}
		rows = append(rows, []string{
			n.ID,
			NotificationBadge(n.Type),
			string(n.Category),
			title,
			state,
			Dim(Ago(n.Timestamp, now)),
		})
	}
	return RenderTable([]string{"ID", "TYPE", "CATEGORY", "TITLE", "STATE", "WHEN"}, rows)
}
