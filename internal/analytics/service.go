package analytics

import (
	"fmt"
	"log/slog"

	"github.com/tally-lab/project-tally/internal/core/aggregation"
	"github.com/tally-lab/project-tally/internal/core/sales"
)

// RecordSource hands out the current immutable record collection.
// The returned slice must not be modified.
type RecordSource interface {
	Records() ([]sales.Record, error)
}

// Service answers analytical queries against the records of a RecordSource.
// It keeps no state between calls: every method is a pure function of the
// current collection and its arguments.
type Service struct {
	source RecordSource
	topN   int
}

// NewService creates a new analytics service. topN <= 0 selects DefaultTopN.
func NewService(source RecordSource, topN int) *Service {
	if source == nil {
		panic("analytics: record source must not be nil")
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Service{source: source, topN: topN}
}

func (s *Service) records() ([]sales.Record, error) {
	records, err := s.source.Records()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// States lists the distinct states of the dataset.
func (s *Service) States() ([]string, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	return States(records), nil
}

// DateRange returns the order date span of a state. ErrNotFound when the
// state has no records.
func (s *Service) DateRange(state string) (DateRange, error) {
	records, err := s.records()
	if err != nil {
		return DateRange{}, err
	}
	return DateRangeFor(records, state)
}

// Dashboard computes cards and charts for q.
func (s *Service) Dashboard(q Query) (Dashboard, error) {
	records, err := s.records()
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(records, q, s.topN), nil
}

// Customers lists the customer directory of the whole dataset.
func (s *Service) Customers() ([]Customer, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	return CustomerDirectory(records), nil
}

// Analytics computes the leaderboards and summary for q.
func (s *Service) Analytics(q Query) (Report, error) {
	records, err := s.records()
	if err != nil {
		return Report{}, err
	}
	return BuildReport(records, q, s.topN), nil
}

// Trends computes the trend series for q. An unrecognized q.Period falls back
// to daily buckets and is logged.
func (s *Service) Trends(q Query) (TrendSeries, error) {
	records, err := s.records()
	if err != nil {
		return TrendSeries{}, err
	}

	g, known := aggregation.ParseGranularity(q.Period)
	if !known && q.Period != "" {
		slog.Warn("Unrecognized trend period, falling back to daily", "period", q.Period)
	}
	return BuildTrend(records, q, g), nil
}
