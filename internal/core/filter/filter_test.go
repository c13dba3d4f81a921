package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

func rec(id, state, date, customer string) sales.Record {
	return sales.Record{
		OrderID:    id,
		State:      state,
		OrderDate:  sales.ParseDate(date),
		CustomerID: customer,
		Sales:      decimal.NewFromInt(1),
	}
}

func ids(records []sales.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.OrderID)
	}
	return out
}

func fixture() []sales.Record {
	return []sales.Record{
		rec("o1", "California", "2016-01-01", "c1"),
		rec("o2", "Texas", "2016-03-10", "c2"),
		rec("o3", "California", "2016-06-15", "c2"),
		rec("o4", "California", "2016-06-16", "c1"),
		rec("o5", "California", "not a date", "c1"),
		rec("o6", "california", "2016-02-01", "c1"),
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "empty criteria keeps everything",
			criteria: Criteria{},
			want:     []string{"o1", "o2", "o3", "o4", "o5", "o6"},
		},
		{
			name:     "state is exact and case sensitive",
			criteria: Criteria{State: "California"},
			want:     []string{"o1", "o3", "o4", "o5"},
		},
		{
			name:     "date range is inclusive on both ends",
			criteria: Criteria{FromDate: "2016-01-01", ToDate: "2016-06-15"},
			want:     []string{"o1", "o2", "o3", "o6"},
		},
		{
			name:     "from only",
			criteria: Criteria{FromDate: "2016-06-15"},
			want:     []string{"o3", "o4"},
		},
		{
			name:     "to only",
			criteria: Criteria{ToDate: "2016-01-31"},
			want:     []string{"o1"},
		},
		{
			name:     "state and range combine",
			criteria: Criteria{State: "California", FromDate: "2016-02-01"},
			want:     []string{"o3", "o4"},
		},
		{
			name:     "no match is an empty result",
			criteria: Criteria{State: "Nevada"},
			want:     []string{},
		},
		{
			name:     "malformed bound excludes every record",
			criteria: Criteria{FromDate: "yesterday"},
			want:     []string{},
		},
		{
			name:     "customer is not applied by Apply",
			criteria: Criteria{State: "Texas", CustomerID: "c1"},
			want:     []string{"o2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(fixture(), tc.criteria)
			require.Equal(t, tc.want, ids(got))
		})
	}
}

func TestApply_MalformedRecordDateSilentlyExcludedFromRanges(t *testing.T) {
	records := fixture()

	unbounded := Apply(records, Criteria{State: "California"})
	require.Contains(t, ids(unbounded), "o5")

	bounded := Apply(records, Criteria{State: "California", FromDate: "1900-01-01"})
	require.NotContains(t, ids(bounded), "o5")

	bounded = Apply(records, Criteria{State: "California", ToDate: "2100-01-01"})
	require.NotContains(t, ids(bounded), "o5")
}

func TestApply_IsOrderPreservingSubsequence(t *testing.T) {
	records := fixture()
	criteria := []Criteria{
		{},
		{State: "California"},
		{FromDate: "2016-02-01"},
		{ToDate: "2016-06-15", State: "Texas"},
	}

	for _, c := range criteria {
		got := Apply(records, c)
		j := 0
		for _, r := range got {
			for j < len(records) && records[j].OrderID != r.OrderID {
				j++
			}
			require.Less(t, j, len(records), "record %s out of order for %+v", r.OrderID, c)
			j++
		}
	}
}

func TestApplyCustomer(t *testing.T) {
	records := fixture()

	require.Equal(t, ids(records), ids(ApplyCustomer(records, "")))
	require.Equal(t, []string{"o2", "o3"}, ids(ApplyCustomer(records, "c2")))
	require.Empty(t, ApplyCustomer(records, "C2"))
}

func TestCriteria_Narrow(t *testing.T) {
	c := Criteria{State: "California", ToDate: "2016-06-30", CustomerID: "c1"}
	require.Equal(t, []string{"o1", "o4"}, ids(c.Narrow(fixture())))
	require.False(t, c.IsEmpty())
	require.True(t, Criteria{}.IsEmpty())
}

func TestCriteria_Narrow_EmptyReturnsInput(t *testing.T) {
	records := fixture()
	out := Criteria{}.Narrow(records)
	require.Len(t, out, len(records))
	require.Same(t, &records[0], &out[0])

	// A customer-only constraint still narrows.
	out = Criteria{CustomerID: "c2"}.Narrow(records)
	require.Equal(t, []string{"o2", "o3"}, ids(out))
	require.Equal(t, "o1", records[0].OrderID)
}

func TestByState(t *testing.T) {
	require.Equal(t, []string{"o2"}, ids(ByState(fixture(), "Texas")))
}
