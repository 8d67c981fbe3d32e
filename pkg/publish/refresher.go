package publish

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRefreshInterval is how often snapshot statuses are re-evaluated
// to catch effective-date boundary crossings.
const DefaultRefreshInterval = time.Minute

// Refresher re-runs the status transition pass on a fixed interval. Plain
// polling: no cancellation beyond the context, no backpressure.
type Refresher struct {
	mgr      *Manager
	interval time.Duration
	log      zerolog.Logger
}

// NewRefresher returns a Refresher. A non-positive interval falls back to
// DefaultRefreshInterval.
func NewRefresher(mgr *Manager, interval time.Duration, log zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{mgr: mgr, interval: interval, log: log}
}

// Run refreshes immediately, then on every tick until the context is
// canceled. Refresh errors are logged and the loop continues.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	changed, err := r.mgr.RefreshStatuses()
	if err != nil {
		r.log.Error().Err(err).Msg("status refresh failed")
		return
	}
	if changed > 0 {
		r.log.Info().Int("changed", changed).Msg("status refresh applied transitions")
	}
}
