package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
)

// FixedNow is the reference instant used by fixtures and fixed clocks.
var FixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// Financial options
type FinancialOption func(*domain.FinancialRecord)

func WithRevenue(revenue, expenses int64) FinancialOption {
	return func(r *domain.FinancialRecord) {
		r.Revenue = revenue
		r.Expenses = expenses
		r.Profit = revenue - expenses
		r.OperatingCosts = expenses
		r.MarketingCosts, r.RDCosts, r.AdminCosts = 0, 0, 0
	}
}

// NewFinancialRecord builds a consistent financial record for date.
func NewFinancialRecord(date string, opts ...FinancialOption) domain.FinancialRecord {
	r := domain.FinancialRecord{
		ID:             domain.MetricID(domain.FinancialIDPrefix, date),
		Date:           date,
		Revenue:        2_500_000,
		Expenses:       1_800_000,
		Profit:         700_000,
		ProfitMargin:   28,
		CashFlow:       840_000,
		OperatingCosts: 1_080_000,
		MarketingCosts: 360_000,
		RDCosts:        300_000,
		AdminCosts:     60_000,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Notification options
type NotificationOption func(*domain.Notification)

func WithRead(read bool) NotificationOption {
	return func(n *domain.Notification) { n.Read = read }
}

func WithCategory(c domain.NotificationCategory) NotificationOption {
	return func(n *domain.Notification) { n.Category = c }
}

// NewNotification builds an unread info notification.
func NewNotification(id string, opts ...NotificationOption) domain.Notification {
	n := domain.Notification{
		ID:        id,
		Title:     fmt.Sprintf("Notification %s", id),
		Message:   "Something happened.",
		Timestamp: FixedNow,
		Category:  domain.CategorySystem,
		Type:      domain.NotificationInfo,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}
