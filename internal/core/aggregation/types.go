package aggregation

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Supported aggregation operators.
const (
	OpSum = "sum"
	// OpAvg keeps the running total; callers divide by N at read time.
	OpAvg = "avg"
)

// KeyFunc extracts the group key of a record.
type KeyFunc func(sales.Record) string

// Metric names one accumulator computed per group.
type Metric struct {
	Name     string
	Operator string // one of the Op* constants
	Field    Field
}

// State is the composite running value of one metric within a group.
// N is the number of records folded into Value; for avg it is the divisor.
type State struct {
	Value decimal.Decimal
	N     int64
}

// Mean is an average that may be undefined. It stays NaN inside the engine
// and encodes as JSON null so the boundary can decide how to present it.
type Mean float64

// Undefined reports whether the mean had no contributing records.
func (m Mean) Undefined() bool { return math.IsNaN(float64(m)) }

// MarshalJSON implements json.Marshaler.
func (m Mean) MarshalJSON() ([]byte, error) {
	if m.Undefined() || math.IsInf(float64(m), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}
