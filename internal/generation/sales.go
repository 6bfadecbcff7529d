package generation

import (
	"slices"
	"sort"

	"github.com/alexanderramin/execview/internal/domain"
)

const (
	baseNewDeals    = 45
	baseClosedDeals = 35
	basePipeline    = 1_500_000
	baseAvgDealSize = 42_000

	topProductCount = 5
)

var salesSeasonality = Seasonality{0.9, 0.85, 0.95, 1.3}

var productCatalog = []string{
	"Enterprise Platform",
	"Cloud Storage",
	"Analytics Suite",
	"Security Pro",
	"API Services",
	"Mobile SDK",
	"IoT Gateway",
	"ML Toolkit",
}

// Sales generates count sales records at cadence g.
func (s *Synthesizer) Sales(g domain.Granularity, count int) []domain.SalesRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.points(g, count, salesSeasonality)
	out := make([]domain.SalesRecord, 0, len(points))
	for _, p := range points {
		growth := s.growth(p.progress, 0.07, 0.10)
		variation := s.uniform(0.90, 1.10)
		mult := g.PeriodMultiplier() * p.seasonal * growth * variation

		newDeals := roundInt(baseNewDeals * mult)
		closedDeals := roundInt(baseClosedDeals * mult)
		pipeline := roundInt(basePipeline * mult * s.uniform(0.95, 1.05))
		avgDealSize := roundInt(baseAvgDealSize * mult * s.uniform(0.97, 1.03))

		var conversion float64
		if newDeals != 0 {
			conversion = roundTo(float64(closedDeals)/float64(newDeals)*100, 1)
		}

		out = append(out, domain.SalesRecord{
			ID:              domain.MetricID(domain.SalesIDPrefix, p.date),
			Date:            p.date,
			NewDeals:        newDeals,
			ClosedDeals:     closedDeals,
			Pipeline:        pipeline,
			ConversionRate:  conversion,
			AverageDealSize: avgDealSize,
			SalesCycle:      roundInt(s.uniform(28, 42)),
			RegionData:      s.regionSplit(),
			TopProducts:     s.topProducts(mult, avgDealSize),
		})
	}
	return out
}

// regionSplit draws a share per region, rescales them to 100 and lets Latin
// America absorb the one-decimal rounding difference.
func (s *Synthesizer) regionSplit() domain.RegionData {
	na := s.uniform(45, 55)
	eu := s.uniform(20, 30)
	ap := s.uniform(15, 25)
	la := s.uniform(5, 12)
	total := na + eu + ap + la

	r := domain.RegionData{
		NorthAmerica: roundTo(na/total*100, 1),
		Europe:       roundTo(eu/total*100, 1),
		AsiaPacific:  roundTo(ap/total*100, 1),
	}
	r.LatinAmerica = roundTo(100-r.NorthAmerica-r.Europe-r.AsiaPacific, 1)
	return r
}

func (s *Synthesizer) topProducts(mult float64, avgDealSize int64) []domain.ProductSales {
	names := slices.Clone(productCatalog)
	s.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	products := make([]domain.ProductSales, 0, topProductCount)
	for _, name := range names[:topProductCount] {
		revenue := roundInt(basePipeline * mult * s.uniform(0.05, 0.3))
		var quantity int64
		if avgDealSize > 0 {
			quantity = roundInt(float64(revenue) / float64(avgDealSize) * s.uniform(0.8, 1.2))
		}
		products = append(products, domain.ProductSales{Name: name, Revenue: revenue, Quantity: quantity})
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Revenue > products[j].Revenue })
	return products
}
