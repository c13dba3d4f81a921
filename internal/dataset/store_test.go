package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// scriptedSource returns its batches in order, then repeats the last one.
type scriptedSource struct {
	mu      sync.Mutex
	batches [][]sales.Record
	errs    []error
	calls   int
}

func (s *scriptedSource) Load(_ context.Context) ([]sales.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.batches) {
		i = len(s.batches) - 1
	}
	s.calls++
	return s.batches[i], s.errs[i]
}

func (s *scriptedSource) Describe() string { return "scripted" }

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func record(id string) sales.Record {
	return sales.Record{OrderID: id, OrderDate: sales.NewDate(2016, time.January, 1)}
}

func TestStore_NotLoaded(t *testing.T) {
	store := NewStore(NewStaticSource(nil))

	_, err := store.Records()
	require.ErrorIs(t, err, ErrNotLoaded)
	require.ErrorIs(t, store.Ping(context.Background()), ErrNotLoaded)

	_, ok := store.Snapshot()
	require.False(t, ok)
	require.Nil(t, store.HealthDetails())
}

func TestStore_Reload(t *testing.T) {
	src := &scriptedSource{
		batches: [][]sales.Record{
			{record("o1")},
			{record("o1"), record("o2")},
			nil,
		},
		errs: []error{nil, nil, errors.New("disk gone")},
	}
	store := NewStore(src)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return fixed }

	snap, err := store.Reload(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Records, 1)
	require.Equal(t, fixed, snap.LoadedAt)
	require.Equal(t, "scripted", snap.Source)
	require.NoError(t, store.Ping(context.Background()))
	require.Equal(t, map[string]interface{}{
		"records":   1,
		"loaded_at": "2024-03-01T12:00:00Z",
		"source":    "scripted",
	}, store.HealthDetails())

	_, err = store.Reload(context.Background())
	require.NoError(t, err)
	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// A failed reload leaves the previous generation in place.
	_, err = store.Reload(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk gone")
	records, err = store.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestStore_EmptyDatasetIsLoaded(t *testing.T) {
	store := NewStore(NewStaticSource([]sales.Record{}))
	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	records, err := store.Records()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_CountsUndatedRecords(t *testing.T) {
	records := []sales.Record{
		record("o1"),
		{OrderID: "o2", OrderDate: sales.ParseDate("garbage")},
	}
	require.Equal(t, 1, countUndated(records))
}

func TestNewStore_NilSourcePanics(t *testing.T) {
	require.Panics(t, func() { NewStore(nil) })
}
