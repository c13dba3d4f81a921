package sales

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Record is one sales transaction. Records are immutable once loaded and are
// shared read-only by every query.
//
// Field keys follow the Superstore export so dataset files can be consumed
// without a mapping step.
type Record struct {
	// OrderID is not unique: one order spans several line items.
	OrderID   string `json:"Order ID" yaml:"Order ID"`
	OrderDate Date   `json:"Order Date" yaml:"Order Date"`

	// CustomerID and CustomerName travel as a pair. Nothing ties one id to a
	// single spelling of the name.
	CustomerID   string `json:"Customer ID" yaml:"Customer ID"`
	CustomerName string `json:"Customer Name" yaml:"Customer Name"`

	State  string `json:"State" yaml:"State"`
	Region string `json:"Region" yaml:"Region"`
	City   string `json:"City" yaml:"City"`

	ProductName string `json:"Product Name" yaml:"Product Name"`
	Category    string `json:"Category" yaml:"Category"`
	SubCategory string `json:"Sub-Category" yaml:"Sub-Category"`
	Segment     string `json:"Segment" yaml:"Segment"`

	Sales    decimal.Decimal `json:"Sales" yaml:"Sales"`
	Profit   decimal.Decimal `json:"Profit" yaml:"Profit"` // may be negative
	Quantity Quantity        `json:"Quantity" yaml:"Quantity"`

	// Discount is a fraction in [0, 1). Zero means no discount was applied.
	Discount decimal.Decimal `json:"Discount" yaml:"Discount"`
}

// Discounted reports whether a discount was applied to the line item.
func (r Record) Discounted() bool {
	return r.Discount.IsPositive()
}

// Quantity is the number of units on a line item. Dataset files carry it
// either as a number or as a numeric string; a fractional value is truncated.
type Quantity int64

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return q.parse(strings.Trim(string(data), `"`))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	return q.parse(node.Value)
}

func (q *Quantity) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*q = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	*q = Quantity(d.IntPart())
	return nil
}
