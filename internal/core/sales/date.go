package sales

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical day format used on the wire and in period keys.
const DateLayout = "2006-01-02"

// acceptedLayouts are tried in order. The US form is what the Superstore
// export ships with.
var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
}

// Date is a calendar day with no time-of-day semantics.
// The zero value is an invalid date: it never passes a bounded range check.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate builds a valid Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// ParseDate parses s into a Date. It never fails: input in none of the
// accepted layouts yields an invalid Date, which the filter and trend
// components exclude silently.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Date())
		}
	}
	return Date{}
}

// Valid reports whether the date parsed.
func (d Date) Valid() bool { return d.valid }

// Time returns midnight UTC of the day. Zero time for an invalid date.
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Compare returns -1, 0 or +1. Only meaningful when both dates are valid;
// use Within for range membership.
func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

// Within reports whether d lies in the inclusive range [from, to]. A nil bound
// is unconstrained. Any comparison involving an invalid date is false.
func (d Date) Within(from, to *Date) bool {
	if from != nil {
		if !d.valid || !from.valid || d.Compare(*from) < 0 {
			return false
		}
	}
	if to != nil {
		if !d.valid || !to.valid || d.Compare(*to) > 0 {
			return false
		}
	}
	return true
}

// String formats the date as YYYY-MM-DD, or "" when invalid.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unparseable text is not
// an error; it produces an invalid Date.
func (d *Date) UnmarshalText(text []byte) error {
	*d = ParseDate(string(text))
	return nil
}

// Scan implements sql.Scanner for DATE, TIMESTAMP and TEXT columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v.Date())
	case string:
		*d = ParseDate(v)
	case []byte:
		*d = ParseDate(string(v))
	default:
		return fmt.Errorf("cannot scan %T into sales.Date", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.valid {
		return nil, nil
	}
	return d.t, nil
}
