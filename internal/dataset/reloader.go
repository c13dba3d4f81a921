package dataset

import (
	"context"
	"log/slog"
	"time"
)

// Reloader refreshes a Store on a fixed interval.
type Reloader struct {
	interval time.Duration
	store    *Store
}

// NewReloader creates a reloader. interval must be positive.
func NewReloader(interval time.Duration, store *Store) *Reloader {
	return &Reloader{interval: interval, store: store}
}

// Start reloads the store every interval until ctx is cancelled. Failed
// reloads are logged; the last good snapshot keeps serving.
func (r *Reloader) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("[Reloader] Starting dataset reloader", "interval", r.interval)

	for {
		select {
		case <-ticker.C:
			if _, err := r.store.Reload(ctx); err != nil {
				slog.Error("[Reloader] Dataset reload failed, keeping previous snapshot", "error", err)
			}
		case <-ctx.Done():
			slog.Info("[Reloader] Stopping (context cancelled)")
			return nil
		}
	}
}
