package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Field reads one numeric measure from a record.
type Field func(sales.Record) decimal.Decimal

// Record measures.
var (
	FieldSales    Field = func(r sales.Record) decimal.Decimal { return r.Sales }
	FieldProfit   Field = func(r sales.Record) decimal.Decimal { return r.Profit }
	FieldQuantity Field = func(r sales.Record) decimal.Decimal { return decimal.NewFromInt(int64(r.Quantity)) }
	FieldDiscount Field = func(r sales.Record) decimal.Decimal { return r.Discount }
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
)

// RoundHalfUp rounds to the nearest integer with halves going toward
// positive infinity: 2.5 → 3, -2.5 → -2.
//
// Only call it when a value leaves the engine. Intermediate sums stay at full
// precision.
func RoundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// RoundTenth rounds to one decimal place with the same half-up rule.
func RoundTenth(d decimal.Decimal) float64 {
	return d.Mul(ten).Add(half).Floor().Div(ten).InexactFloat64()
}
