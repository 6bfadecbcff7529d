package domain

// DateLayout is the calendar-day format used for record dates.
const DateLayout = "2006-01-02"

// Record is anything stored in a collection. IDs are unique per collection.
type Record interface {
	RecordID() string
}

// Record ID prefixes, one per metric domain.
const (
	FinancialIDPrefix  = "fin"
	SalesIDPrefix      = "sales"
	OperationsIDPrefix = "ops"
	CustomerIDPrefix   = "cust"
	EmployeeIDPrefix   = "emp"
)

// MetricID builds the domain-prefixed record ID for a date.
func MetricID(prefix, date string) string {
	return prefix + "-" + date
}

type FinancialRecord struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Revenue        int64   `json:"revenue"`
	Expenses       int64   `json:"expenses"`
	Profit         int64   `json:"profit"`
	ProfitMargin   float64 `json:"profitMargin"`
	CashFlow       int64   `json:"cashFlow"`
	OperatingCosts int64   `json:"operatingCosts"`
	MarketingCosts int64   `json:"marketingCosts"`
	RDCosts        int64   `json:"rdCosts"`
	AdminCosts     int64   `json:"adminCosts"`
}

func (r FinancialRecord) RecordID() string { return r.ID }

// RegionData holds the regional split of sales in percent. The four shares
// sum to 100.
type RegionData struct {
	NorthAmerica float64 `json:"northAmerica"`
	Europe       float64 `json:"europe"`
	AsiaPacific  float64 `json:"asiaPacific"`
	LatinAmerica float64 `json:"latinAmerica"`
}

// Total returns the sum of all regional shares.
func (r RegionData) Total() float64 {
	return r.NorthAmerica + r.Europe + r.AsiaPacific + r.LatinAmerica
}

type ProductSales struct {
	Name     string `json:"name"`
	Revenue  int64  `json:"revenue"`
	Quantity int64  `json:"quantity"`
}

type SalesRecord struct {
	ID              string         `json:"id"`
	Date            string         `json:"date"`
	NewDeals        int64          `json:"newDeals"`
	ClosedDeals     int64          `json:"closedDeals"`
	Pipeline        int64          `json:"pipeline"`
	ConversionRate  float64        `json:"conversionRate"`
	AverageDealSize int64          `json:"averageDealSize"`
	SalesCycle      int64          `json:"salesCycle"`
	RegionData      RegionData     `json:"regionData"`
	TopProducts     []ProductSales `json:"topProducts"`
}

func (r SalesRecord) RecordID() string { return r.ID }

type OperationsRecord struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	ProductionEfficiency float64 `json:"productionEfficiency"`
	InventoryLevel       int64   `json:"inventoryLevel"`
	InventoryTurnover    float64 `json:"inventoryTurnover"`
	DeliveryOnTime       float64 `json:"deliveryOnTime"`
	AverageDeliveryTime  float64 `json:"averageDeliveryTime"`
	QualityScore         float64 `json:"qualityScore"`
	DefectRate           float64 `json:"defectRate"`
	CapacityUtilization  float64 `json:"capacityUtilization"`
	MaintenanceCost      int64   `json:"maintenanceCost"`
}

func (r OperationsRecord) RecordID() string { return r.ID }

type CustomerRecord struct {
	ID                      string  `json:"id"`
	Date                    string  `json:"date"`
	SatisfactionScore       float64 `json:"satisfactionScore"`
	NPS                     int64   `json:"nps"`
	ChurnRate               float64 `json:"churnRate"`
	CustomerLifetimeValue   int64   `json:"customerLifetimeValue"`
	ActiveCustomers         int64   `json:"activeCustomers"`
	NewCustomers            int64   `json:"newCustomers"`
	SupportTickets          int64   `json:"supportTickets"`
	SupportResponseTime     float64 `json:"supportResponseTime"`
	CustomerAcquisitionCost int64   `json:"customerAcquisitionCost"`
}

func (r CustomerRecord) RecordID() string { return r.ID }

// DepartmentData is the headcount per department. The fields sum to the
// owning record's Headcount.
type DepartmentData struct {
	Engineering int64 `json:"engineering"`
	Sales       int64 `json:"sales"`
	Marketing   int64 `json:"marketing"`
	Operations  int64 `json:"operations"`
	Support     int64 `json:"support"`
	Admin       int64 `json:"admin"`
}

// Total returns the sum of all department headcounts.
func (d DepartmentData) Total() int64 {
	return d.Engineering + d.Sales + d.Marketing + d.Operations + d.Support + d.Admin
}

type EmployeeRecord struct {
	ID                string         `json:"id"`
	Date              string         `json:"date"`
	Headcount         int64          `json:"headcount"`
	NewHires          int64          `json:"newHires"`
	TurnoverRate      float64        `json:"turnoverRate"`
	ProductivityScore float64        `json:"productivityScore"`
	EngagementScore   float64        `json:"engagementScore"`
	RetentionRate     float64        `json:"retentionRate"`
	TrainingCost      int64          `json:"trainingCost"`
	AverageTenure     float64        `json:"averageTenure"`
	DepartmentData    DepartmentData `json:"departmentData"`
}

func (r EmployeeRecord) RecordID() string { return r.ID }
