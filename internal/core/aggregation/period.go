package aggregation

import (
	"fmt"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Granularity is the calendar bucket size of a trend series.
type Granularity int

const (
	// Daily is the default and the fallback for unrecognized input.
	Daily Granularity = iota
	Monthly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "daily"
	}
}

// ParseGranularity maps "daily", "monthly" and "yearly" (case sensitive) to a
// Granularity. Any other input, including "", returns Daily and false so
// the caller can report the fallback; "monthy" silently meaning daily is the
// kind of typo that should show up in logs.
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "daily":
		return Daily, true
	case "monthly":
		return Monthly, true
	case "yearly":
		return Yearly, true
	default:
		return Daily, false
	}
}

// PeriodKey formats the bucket a date falls into: YYYY-MM-DD, YYYY-MM or
// YYYY. Within one granularity the keys sort chronologically as plain
// strings. Returns "" for an invalid date.
func PeriodKey(d sales.Date, g Granularity) string {
	if !d.Valid() {
		return ""
	}
	switch g {
	case Monthly:
		return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
	case Yearly:
		return fmt.Sprintf("%04d", d.Year())
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
	}
}
