package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// Snapshot is one immutable generation of the record collection.
type Snapshot struct {
	Records  []sales.Record
	LoadedAt time.Time
	Source   string
}

// Store publishes the current Snapshot. Readers never block: a reload builds
// a new snapshot and swaps the pointer.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
	nowFn   func() time.Time
}

// NewStore creates an empty store backed by source. Call Reload before serving.
func NewStore(source Source) *Store {
	if source == nil {
		panic("dataset: source must not be nil")
	}
	return &Store{
		source: source,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Reload loads a fresh snapshot and publishes it. On error the previous
// snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	started := s.nowFn()
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", s.source.Describe(), err)
	}

	snap := &Snapshot{
		Records:  records,
		LoadedAt: s.nowFn(),
		Source:   s.source.Describe(),
	}
	s.current.Store(snap)

	if bad := countUndated(records); bad > 0 {
		slog.Warn("Records with unparseable order dates are excluded from date-bounded views",
			"count", bad,
			"source", snap.Source,
		)
	}
	slog.Info("Dataset loaded",
		"records", len(records),
		"source", snap.Source,
		"duration", snap.LoadedAt.Sub(started),
	)
	return snap, nil
}

// Snapshot returns the current snapshot, or false before the first load.
func (s *Store) Snapshot() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Records implements analytics.RecordSource.
func (s *Store) Records() ([]sales.Record, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return nil, ErrNotLoaded
	}
	return snap.Records, nil
}

// Ping reports whether a snapshot is available.
func (s *Store) Ping(_ context.Context) error {
	if _, ok := s.Snapshot(); !ok {
		return ErrNotLoaded
	}
	return nil
}

// HealthDetails describes the current snapshot for the health endpoint.
func (s *Store) HealthDetails() map[string]interface{} {
	snap, ok := s.Snapshot()
	if !ok {
		return nil
	}
	return map[string]interface{}{
		"records":   len(snap.Records),
		"loaded_at": snap.LoadedAt.Format(time.RFC3339),
		"source":    snap.Source,
	}
}

func countUndated(records []sales.Record) int {
	n := 0
	for _, r := range records {
		if !r.OrderDate.Valid() {
			n++
		}
	}
	return n
}
