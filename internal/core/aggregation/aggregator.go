package aggregation

import (
	"github.com/shopspring/decimal"
)

// Aggregator defines the reduce semantics of an aggregation operator.
// To add a new operator: implement this interface and register it in Operators.
type Aggregator interface {
	// Apply folds an incoming value into the running state. The first call
	// for a group receives the zero State.
	Apply(current State, incoming decimal.Decimal) State
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpSum: sumAgg{},
	OpAvg: sumAgg{},
}

// sumAgg accumulates the sum of incoming values. avg shares it: the
// division happens at read time.
type sumAgg struct{}

func (sumAgg) Apply(cur State, inc decimal.Decimal) State {
	return State{Value: cur.Value.Add(inc), N: cur.N + 1}
}
