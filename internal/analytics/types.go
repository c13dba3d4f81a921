package analytics

import (
	"github.com/tally-lab/project-tally/internal/core/aggregation"
	"github.com/tally-lab/project-tally/internal/core/filter"
)

// Query is the descriptor shared by the filtered endpoints.
type Query struct {
	filter.Criteria
	// Period is the trend granularity: daily, monthly or yearly.
	Period string `form:"period"`
}

// DateRange is the span of order dates recorded for one state.
type DateRange struct {
	MinDate string `json:"minDate"`
	MaxDate string `json:"maxDate"`
}

// Cards are the headline figures of the dashboard.
type Cards struct {
	TotalSales         int64            `json:"totalSales"`
	QuantitySold       int64            `json:"quantitySold"`
	DiscountPercentage aggregation.Mean `json:"discountPercentage"`
	Profit             int64            `json:"profit"`
}

// ChartEntry is one bar of a breakdown chart.
type ChartEntry struct {
	Name  string `json:"name"`
	Sales int64  `json:"sales"`
}

// Charts holds the dashboard breakdowns, each sorted by sales descending.
type Charts struct {
	City        []ChartEntry `json:"city"`
	Product     []ChartEntry `json:"product"`
	Category    []ChartEntry `json:"category"`
	SubCategory []ChartEntry `json:"subCategory"`
	Segment     []ChartEntry `json:"segment"`
}

// Dashboard is the response of the dashboard endpoint.
type Dashboard struct {
	Cards  Cards  `json:"cards"`
	Charts Charts `json:"charts"`
}

// Customer is one entry of the customer directory. Identity is the pair,
// so one id spelled two ways yields two entries.
type Customer struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
}

// ProductStat is one row of the top products leaderboard.
type ProductStat struct {
	ProductName   string           `json:"productName"`
	TotalSales    int64            `json:"totalSales"`
	TotalProfit   int64            `json:"totalProfit"`
	Quantity      int64            `json:"quantity"`
	OrderCount    int64            `json:"orderCount"`
	AvgOrderValue aggregation.Mean `json:"avgOrderValue"`
}

// RegionStat is one row of the region breakdown.
type RegionStat struct {
	Region        string           `json:"region"`
	TotalSales    int64            `json:"totalSales"`
	TotalProfit   int64            `json:"totalProfit"`
	OrderCount    int64            `json:"orderCount"`
	AvgOrderValue aggregation.Mean `json:"avgOrderValue"`
}

// Summary aggregates the whole filtered set.
// AvgOrderValue is undefined (JSON null) when TotalOrders is 0.
type Summary struct {
	TotalOrders     int64            `json:"totalOrders"`
	UniqueCustomers int              `json:"uniqueCustomers"`
	AvgOrderValue   aggregation.Mean `json:"avgOrderValue"`
	TotalCategories int              `json:"totalCategories"`
}

// Report is the response of the analytics endpoint.
type Report struct {
	TopProducts []ProductStat `json:"topProducts"`
	Regions     []RegionStat  `json:"regions"`
	Summary     Summary       `json:"summary"`
}

// TrendSeries is the response of the trends endpoint.
type TrendSeries struct {
	Period string                   `json:"period"`
	Points []aggregation.TrendPoint `json:"points"`
}
