// Package dataset owns the record collection the analytics engine reads:
// where it is loaded from, the immutable snapshot queries run against, and
// when it is refreshed.
package dataset

import (
	"context"
	"errors"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

var (
	// ErrNotLoaded is returned by Store reads before the first successful load.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Source loads the full record collection.
type Source interface {
	Load(ctx context.Context) ([]sales.Record, error)
	// Describe names the source in logs.
	Describe() string
}

// StaticSource serves a fixed slice. Useful for tests and embedding.
type StaticSource struct {
	records []sales.Record
}

// NewStaticSource creates a source that always returns records.
func NewStaticSource(records []sales.Record) *StaticSource {
	return &StaticSource{records: records}
}

func (s *StaticSource) Load(_ context.Context) ([]sales.Record, error) {
	return s.records, nil
}

func (s *StaticSource) Describe() string { return "static" }
