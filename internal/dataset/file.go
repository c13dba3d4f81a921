package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

// FileSource loads records from JSON or YAML files. Each file holds a
// top-level array of records. Patterns are expanded with filepath.Glob;
// files are read concurrently and concatenated in pattern order, each
// pattern's matches sorted by name.
type FileSource struct {
	patterns []string
}

// NewFileSource creates a file-backed source.
func NewFileSource(patterns ...string) *FileSource {
	return &FileSource{patterns: patterns}
}

func (s *FileSource) Describe() string {
	return "file:" + strings.Join(s.patterns, ",")
}

// Load reads every matched file. A pattern matching nothing is an error so a
// typo in the configuration does not serve an empty dataset.
func (s *FileSource) Load(ctx context.Context) ([]sales.Record, error) {
	paths, err := s.expand()
	if err != nil {
		return nil, err
	}

	parts := make([][]sales.Record, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := readFile(path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]sales.Record, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (s *FileSource) expand() ([]string, error) {
	if len(s.patterns) == 0 {
		return nil, fmt.Errorf("no dataset paths configured")
	}

	var paths []string
	for _, pattern := range s.patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid dataset path %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("dataset path %q matched no files", pattern)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func readFile(path string) ([]sales.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file %s: %w", path, err)
	}

	var records []sales.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing dataset file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing dataset file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return records, nil
}
