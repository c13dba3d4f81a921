package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

func dated(date, amount, profit string, qty int64) sales.Record {
	return sales.Record{
		OrderDate: sales.ParseDate(date),
		Sales:     decimal.RequireFromString(amount),
		Profit:    decimal.RequireFromString(profit),
		Quantity:  sales.Quantity(qty),
	}
}

func TestBucketTrend_Monthly(t *testing.T) {
	records := []sales.Record{
		dated("2016-01-05", "100", "10", 1),
		dated("2016-01-20", "50", "5", 2),
	}

	require.Equal(t, []TrendPoint{
		{Period: "2016-01", Sales: 150, Profit: 15, Quantity: 3},
	}, BucketTrend(records, Monthly))
}

func TestBucketTrend(t *testing.T) {
	records := []sales.Record{
		dated("2017-02-01", "10.25", "-1.5", 3),
		dated("2016-12-31", "0.4", "0.4", 1),
		dated("2016-12-30", "0.4", "0.4", 1),
		dated("garbage", "1000", "1000", 100),
		dated("2016-12-30", "0.4", "-2.5", 2),
	}

	t.Run("daily sorted ascending and sparse", func(t *testing.T) {
		got := BucketTrend(records, Daily)
		require.Equal(t, []TrendPoint{
			{Period: "2016-12-30", Sales: 1, Profit: -2, Quantity: 3},
			{Period: "2016-12-31", Sales: 0, Profit: 0, Quantity: 1},
			{Period: "2017-02-01", Sales: 10, Profit: -1, Quantity: 3},
		}, got)
	})

	t.Run("monthly", func(t *testing.T) {
		got := BucketTrend(records, Monthly)
		require.Equal(t, []TrendPoint{
			{Period: "2016-12", Sales: 1, Profit: -2, Quantity: 4},
			{Period: "2017-02", Sales: 10, Profit: -1, Quantity: 3},
		}, got)
	})

	t.Run("yearly", func(t *testing.T) {
		got := BucketTrend(records, Yearly)
		require.Equal(t, []TrendPoint{
			{Period: "2016", Sales: 1, Profit: -2, Quantity: 4},
			{Period: "2017", Sales: 10, Profit: -1, Quantity: 3},
		}, got)
	})

	t.Run("unrecognized granularity behaves as daily", func(t *testing.T) {
		g, _ := ParseGranularity("monthy")
		require.Equal(t, BucketTrend(records, Daily), BucketTrend(records, g))
	})
}

func TestBucketTrend_Empty(t *testing.T) {
	require.Empty(t, BucketTrend(nil, Monthly))
	require.Empty(t, BucketTrend([]sales.Record{dated("nope", "1", "1", 1)}, Daily))
}
