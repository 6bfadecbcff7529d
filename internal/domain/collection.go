package domain

import "sort"

// Collection names a partition of same-shaped records in the store.
type Collection string

// Base collections. Metric collections hold the monthly series; other
// cadences live in derived collections, see SeriesCollection.
const (
	CollectionFinancial     Collection = "financial_data"
	CollectionSales         Collection = "sales_data"
	CollectionOperations    Collection = "operations_data"
	CollectionCustomer      Collection = "customer_data"
	CollectionEmployee      Collection = "employee_data"
	CollectionNotifications Collection = "notifications"
	CollectionUsers         Collection = "users"
	CollectionSettings      Collection = "settings"
)

// MetricCollections lists the five metric domains in display order.
var MetricCollections = []Collection{
	CollectionFinancial,
	CollectionSales,
	CollectionOperations,
	CollectionCustomer,
	CollectionEmployee,
}

// SeriesCollection returns the collection holding the base metric series at
// cadence g. The monthly series keeps the base name.
func SeriesCollection(base Collection, g Granularity) Collection {
	if g == Monthly || g == "" {
		return base
	}
	return Collection(string(base) + "_" + string(g))
}

// RegenerableCollections returns every collection rewritten by a reset:
// all metric series at every cadence plus notifications.
func RegenerableCollections() []Collection {
	out := make([]Collection, 0, len(MetricCollections)*len(AllGranularities)+1)
	for _, base := range MetricCollections {
		for _, g := range AllGranularities {
			out = append(out, SeriesCollection(base, g))
		}
	}
	return append(out, CollectionNotifications)
}

// AllCollections returns every collection known to the current schema,
// sorted by name.
func AllCollections() []Collection {
	out := append(RegenerableCollections(), CollectionUsers, CollectionSettings)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KnownCollection reports whether c belongs to the schema.
func KnownCollection(c Collection) bool {
	for _, k := range AllCollections() {
		if k == c {
			return true
		}
	}
	return false
}
