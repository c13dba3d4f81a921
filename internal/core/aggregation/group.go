package aggregation

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Group is the accumulated state of every record sharing one key.
type Group struct {
	Key string

	count  int64
	states map[string]State
}

// Count returns the number of records folded into the group.
func (g *Group) Count() int64 { return g.count }

// Value returns the full-precision running total of a metric.
func (g *Group) Value(metric string) decimal.Decimal {
	return g.states[metric].Value
}

// N returns how many records contributed to a metric.
func (g *Group) N(metric string) int64 {
	return g.states[metric].N
}

// Rounded returns Value rounded half-up to an integer.
func (g *Group) Rounded(metric string) int64 {
	return RoundHalfUp(g.Value(metric))
}

// GroupReduce folds records into one Group per distinct key in a single pass.
// Groups are returned in first-occurrence order; callers sort explicitly
// before presenting them.
//
// GroupReduce panics if a metric names an unregistered operator.
func GroupReduce(records []sales.Record, key KeyFunc, metrics []Metric) []*Group {
	reducers := resolve(metrics)

	index := make(map[string]*Group)
	var order []*Group

	for _, r := range records {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = &Group{Key: k, states: make(map[string]State, len(metrics))}
			index[k] = g
			order = append(order, g)
		}
		fold(g, r, metrics, reducers)
	}
	return order
}

// Totals reduces all records into a single group with an empty key.
// The group exists even when records is empty.
func Totals(records []sales.Record, metrics []Metric) *Group {
	reducers := resolve(metrics)
	g := &Group{states: make(map[string]State, len(metrics))}
	for _, r := range records {
		fold(g, r, metrics, reducers)
	}
	return g
}

func fold(g *Group, r sales.Record, metrics []Metric, reducers []Aggregator) {
	g.count++
	for i, m := range metrics {
		var v decimal.Decimal
		if m.Field != nil {
			v = m.Field(r)
		}
		g.states[m.Name] = reducers[i].Apply(g.states[m.Name], v)
	}
}

func resolve(metrics []Metric) []Aggregator {
	reducers := make([]Aggregator, len(metrics))
	for i, m := range metrics {
		agg, ok := Operators[m.Operator]
		if !ok {
			panic(fmt.Sprintf("aggregation: metric %q uses unknown operator %q", m.Name, m.Operator))
		}
		reducers[i] = agg
	}
	return reducers
}

// Rank sorts groups by a metric's full-precision value, descending, and keeps
// the first limit entries. The sort is stable, so ties keep grouping order.
// limit <= 0 keeps everything.
func Rank(groups []*Group, metric string, limit int) []*Group {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value(metric).GreaterThan(groups[j].Value(metric))
	})
	return Truncate(groups, limit)
}

// SortByKey orders groups by key ascending.
func SortByKey(groups []*Group) []*Group {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// Truncate keeps at most n entries. n <= 0 means no limit.
func Truncate[T any](entries []T, n int) []T {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// DistinctKeys returns each key once, in first-occurrence order.
func DistinctKeys(records []sales.Record, key KeyFunc) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// DiscountPercentage averages the discount of discounted records only and
// expresses it as a percentage rounded to one decimal. NaN when no record
// carries a discount.
func DiscountPercentage(records []sales.Record) Mean {
	const metric = "discount"
	discounted := make([]sales.Record, 0, len(records))
	for _, r := range records {
		if r.Discounted() {
			discounted = append(discounted, r)
		}
	}

	g := Totals(discounted, []Metric{{Name: metric, Operator: OpAvg, Field: FieldDiscount}})
	if g.N(metric) == 0 {
		return Mean(math.NaN())
	}
	avg := g.Value(metric).Div(decimal.NewFromInt(g.N(metric)))
	return Mean(RoundTenth(avg.Mul(hundred)))
}
