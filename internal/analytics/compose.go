package analytics

import (
	"errors"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tally-lab/project-tally/internal/core/aggregation"
	"github.com/tally-lab/project-tally/internal/core/filter"
	"github.com/tally-lab/project-tally/internal/core/sales"
)

// DefaultTopN is the truncation limit of the ranked breakdowns.
const DefaultTopN = 10

// ErrNotFound marks lookups that matched no record at all.
var ErrNotFound = errors.New("no matching records")

const (
	mSales    = "sales"
	mProfit   = "profit"
	mQuantity = "quantity"
)

var (
	salesOnly = []aggregation.Metric{
		{Name: mSales, Operator: aggregation.OpSum, Field: aggregation.FieldSales},
	}
	leaderboardMetrics = []aggregation.Metric{
		{Name: mSales, Operator: aggregation.OpSum, Field: aggregation.FieldSales},
		{Name: mProfit, Operator: aggregation.OpSum, Field: aggregation.FieldProfit},
		{Name: mQuantity, Operator: aggregation.OpSum, Field: aggregation.FieldQuantity},
	}
)

func byState(r sales.Record) string       { return r.State }
func byCity(r sales.Record) string        { return r.City }
func byProduct(r sales.Record) string     { return r.ProductName }
func byCategory(r sales.Record) string    { return r.Category }
func bySubCategory(r sales.Record) string { return r.SubCategory }
func bySegment(r sales.Record) string     { return r.Segment }
func byRegion(r sales.Record) string      { return r.Region }
func byCustomerID(r sales.Record) string  { return r.CustomerID }

// States lists every distinct state of the dataset, sorted.
func States(records []sales.Record) []string {
	states := aggregation.DistinctKeys(records, byState)
	if states == nil {
		return []string{}
	}
	sort.Strings(states)
	return states
}

// DateRangeFor returns the earliest and latest valid order dates of a state.
// ErrNotFound when the state has no records. Records whose date did not
// parse are ignored; if none parsed both bounds are empty.
func DateRangeFor(records []sales.Record, state string) (DateRange, error) {
	matched := filter.ByState(records, state)
	if len(matched) == 0 {
		return DateRange{}, ErrNotFound
	}

	var lo, hi sales.Date
	for _, r := range matched {
		d := r.OrderDate
		if !d.Valid() {
			continue
		}
		if !lo.Valid() || d.Compare(lo) < 0 {
			lo = d
		}
		if !hi.Valid() || d.Compare(hi) > 0 {
			hi = d
		}
	}
	return DateRange{MinDate: lo.String(), MaxDate: hi.String()}, nil
}

// BuildDashboard computes the cards and the five breakdown charts over the
// records selected by q.
func BuildDashboard(records []sales.Record, q Query, topN int) Dashboard {
	selected := q.Narrow(records)
	totals := aggregation.Totals(selected, leaderboardMetrics)

	return Dashboard{
		Cards: Cards{
			TotalSales:         totals.Rounded(mSales),
			QuantitySold:       totals.Value(mQuantity).IntPart(),
			DiscountPercentage: aggregation.DiscountPercentage(selected),
			Profit:             totals.Rounded(mProfit),
		},
		Charts: Charts{
			City:        chart(selected, byCity, topN),
			Product:     chart(selected, byProduct, topN),
			Category:    chart(selected, byCategory, 0),
			SubCategory: chart(selected, bySubCategory, topN),
			Segment:     chart(selected, bySegment, 0),
		},
	}
}

func chart(records []sales.Record, key aggregation.KeyFunc, limit int) []ChartEntry {
	groups := aggregation.Rank(aggregation.GroupReduce(records, key, salesOnly), mSales, limit)
	entries := make([]ChartEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, ChartEntry{Name: g.Key, Sales: g.Rounded(mSales)})
	}
	return entries
}

// CustomerDirectory lists distinct (id, name) pairs over the whole dataset,
// sorted by name. Names compare byte-wise; equal names keep dataset order.
func CustomerDirectory(records []sales.Record) []Customer {
	seen := make(map[Customer]struct{})
	customers := make([]Customer, 0)
	for _, r := range records {
		c := Customer{CustomerID: r.CustomerID, CustomerName: r.CustomerName}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		customers = append(customers, c)
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].CustomerName < customers[j].CustomerName
	})
	return customers
}

// BuildReport computes the product leaderboard, the region breakdown and the
// summary block over the records selected by q.
func BuildReport(records []sales.Record, q Query, topN int) Report {
	selected := q.Narrow(records)

	products := aggregation.Rank(aggregation.GroupReduce(selected, byProduct, leaderboardMetrics), mSales, topN)
	top := make([]ProductStat, 0, len(products))
	for _, g := range products {
		top = append(top, ProductStat{
			ProductName:   g.Key,
			TotalSales:    g.Rounded(mSales),
			TotalProfit:   g.Rounded(mProfit),
			Quantity:      g.Value(mQuantity).IntPart(),
			OrderCount:    g.Count(),
			AvgOrderValue: orderValue(g.Value(mSales), g.Count()),
		})
	}

	regionGroups := aggregation.Rank(aggregation.GroupReduce(selected, byRegion, leaderboardMetrics), mSales, 0)
	regions := make([]RegionStat, 0, len(regionGroups))
	for _, g := range regionGroups {
		regions = append(regions, RegionStat{
			Region:        g.Key,
			TotalSales:    g.Rounded(mSales),
			TotalProfit:   g.Rounded(mProfit),
			OrderCount:    g.Count(),
			AvgOrderValue: orderValue(g.Value(mSales), g.Count()),
		})
	}

	totals := aggregation.Totals(selected, salesOnly)
	return Report{
		TopProducts: top,
		Regions:     regions,
		Summary: Summary{
			TotalOrders:     totals.Count(),
			UniqueCustomers: len(aggregation.DistinctKeys(selected, byCustomerID)),
			AvgOrderValue:   orderValue(totals.Value(mSales), totals.Count()),
			TotalCategories: len(aggregation.DistinctKeys(selected, byCategory)),
		},
	}
}

// orderValue rounds the sales total first, divides by the order count and
// rounds again. Dividing the unrounded total can differ by one unit. With no
// orders the value is undefined.
func orderValue(total decimal.Decimal, orders int64) aggregation.Mean {
	if orders == 0 {
		return aggregation.Mean(math.NaN())
	}
	rounded := decimal.NewFromInt(aggregation.RoundHalfUp(total))
	return aggregation.Mean(aggregation.RoundHalfUp(rounded.Div(decimal.NewFromInt(orders))))
}

// BuildTrend buckets the records selected by q at granularity g.
func BuildTrend(records []sales.Record, q Query, g aggregation.Granularity) TrendSeries {
	return TrendSeries{
		Period: g.String(),
		Points: aggregation.BucketTrend(q.Narrow(records), g),
	}
}
