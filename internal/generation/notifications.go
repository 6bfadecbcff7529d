package generation

import (
	"time"

	"github.com/alexanderramin/execview/internal/domain"
)

type notificationSeed struct {
	id       string
	typ      domain.NotificationType
	category domain.NotificationCategory
	title    string
	message  string
	age      time.Duration
	read     bool
}

var notificationSeeds = []notificationSeed{
	{
		id: "notif-1", typ: domain.NotificationWarning, category: domain.CategoryFinancial,
		title:   "Cash Flow Alert",
		message: "Q3 cash flow projections below target by 12%. Review financial dashboard.",
		age:     30 * time.Minute,
	},
	{
		id: "notif-2", typ: domain.NotificationSuccess, category: domain.CategorySales,
		title:   "Sales Target Achieved",
		message: "APAC region has exceeded Q3 sales targets by 8%. Congratulations to the team!",
		age:     2 * time.Hour, read: true,
	},
	{
		id: "notif-3", typ: domain.NotificationInfo, category: domain.CategoryCustomer,
		title:   "New Customer Insights",
		message: "Customer satisfaction score increased by 0.5 points this month.",
		age:     5 * time.Hour,
	},
	{
		id: "notif-4", typ: domain.NotificationError, category: domain.CategoryOperations,
		title:   "Inventory Alert",
		message: "Product X inventory levels critically low. Expected stockout in 5 days.",
		age:     8 * time.Hour,
	},
	{
		id: "notif-5", typ: domain.NotificationWarning, category: domain.CategoryEmployee,
		title:   "Employee Turnover Increase",
		message: "Engineering department turnover rate increased by 2.5% this month.",
		age:     24 * time.Hour, read: true,
	},
	{
		id: "notif-6", typ: domain.NotificationInfo, category: domain.CategoryOperations,
		title:   "Operations Update",
		message: "Production efficiency improved by 3% over the last quarter.",
		age:     36 * time.Hour,
	},
	{
		id: "notif-7", typ: domain.NotificationSuccess, category: domain.CategoryFinancial,
		title:   "Budget Approval",
		message: "Q4 marketing budget has been approved.",
		age:     48 * time.Hour, read: true,
	},
}

// SeedNotifications returns the fixed notification feed, newest first, with
// timestamps relative to now.
func SeedNotifications(now time.Time) []domain.Notification {
	out := make([]domain.Notification, len(notificationSeeds))
	for i, n := range notificationSeeds {
		out[i] = domain.Notification{
			ID:        n.id,
			Title:     n.title,
			Message:   n.message,
			Timestamp: now.Add(-n.age).UTC(),
			Read:      n.read,
			Category:  n.category,
			Type:      n.typ,
		}
	}
	return out
}
