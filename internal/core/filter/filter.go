// Package filter narrows a record sequence by state, order date range and
// customer. Every pass is order preserving and never modifies its input.
package filter

import (
	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Criteria holds the optional constraints of one query. An empty field means
// "no constraint", never "match the empty string".
type Criteria struct {
	State      string `form:"state"`
	FromDate   string `form:"fromDate"`
	ToDate     string `form:"toDate"`
	CustomerID string `form:"customerId"`
}

// IsEmpty reports whether no constraint is set.
func (c Criteria) IsEmpty() bool {
	return c.State == "" && c.FromDate == "" && c.ToDate == "" && c.CustomerID == ""
}

// Narrow runs Apply and then ApplyCustomer. Empty criteria return records
// unchanged.
func (c Criteria) Narrow(records []sales.Record) []sales.Record {
	if c.IsEmpty() {
		return records
	}
	return ApplyCustomer(Apply(records, c), c.CustomerID)
}

// Apply keeps records matching the state and inclusive date range of c.
// CustomerID is ignored here; see ApplyCustomer.
//
// Bounds are compared as calendar days. A bound that does not parse is still
// a constraint: it fails every comparison and so excludes every record.
func Apply(records []sales.Record, c Criteria) []sales.Record {
	if c.State == "" && c.FromDate == "" && c.ToDate == "" {
		return records
	}

	var from, to *sales.Date
	if c.FromDate != "" {
		d := sales.ParseDate(c.FromDate)
		from = &d
	}
	if c.ToDate != "" {
		d := sales.ParseDate(c.ToDate)
		to = &d
	}

	out := make([]sales.Record, 0, len(records))
	for _, r := range records {
		if c.State != "" && r.State != c.State {
			continue
		}
		if !r.OrderDate.Within(from, to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ApplyCustomer keeps records whose CustomerID equals customerID exactly.
// An empty id passes everything through.
func ApplyCustomer(records []sales.Record, customerID string) []sales.Record {
	if customerID == "" {
		return records
	}

	out := make([]sales.Record, 0)
	for _, r := range records {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

// ByState keeps the records of one state. Used by lookups that take a state
// but no date range.
func ByState(records []sales.Record, state string) []sales.Record {
	return Apply(records, Criteria{State: state})
}
