package aggregation

import (
	"github.com/tally-lab/project-tally/internal/core/sales"
)

// TrendPoint is one non-empty period of a trend series.
type TrendPoint struct {
	Period   string `json:"period"`
	Sales    int64  `json:"sales"`
	Profit   int64  `json:"profit"`
	Quantity int64  `json:"quantity"`
}

var trendMetrics = []Metric{
	{Name: "sales", Operator: OpSum, Field: FieldSales},
	{Name: "profit", Operator: OpSum, Field: FieldProfit},
	{Name: "quantity", Operator: OpSum, Field: FieldQuantity},
}

// BucketTrend folds records into per-period totals, ascending by period key.
// The series is sparse: periods without records are absent. Records whose
// order date did not parse belong to no period and are skipped.
func BucketTrend(records []sales.Record, g Granularity) []TrendPoint {
	dated := make([]sales.Record, 0, len(records))
	for _, r := range records {
		if r.OrderDate.Valid() {
			dated = append(dated, r)
		}
	}

	groups := GroupReduce(dated, func(r sales.Record) string {
		return PeriodKey(r.OrderDate, g)
	}, trendMetrics)
	SortByKey(groups)

	points := make([]TrendPoint, 0, len(groups))
	for _, grp := range groups {
		points = append(points, TrendPoint{
			Period:   grp.Key,
			Sales:    grp.Rounded("sales"),
			Profit:   grp.Rounded("profit"),
			Quantity: grp.Value("quantity").IntPart(),
		})
	}
	return points
}
