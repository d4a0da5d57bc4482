// Package worker runs background maintenance jobs.
package worker

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/metrics"
	"go.uber.org/zap"
)

// EventExpirer marks events that started before cutoff as expired. cutoff is
// formatted "2006-01-02 15:04".
type EventExpirer interface {
	ExpireBefore(ctx context.Context, cutoff string) (int64, error)
}

// ExpirySweeper periodically expires events whose start has passed.
type ExpirySweeper struct {
	events   EventExpirer
	interval time.Duration
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

// NewExpirySweeper builds a sweeper. Event dates and times are interpreted in
// loc.
func NewExpirySweeper(events EventExpirer, interval time.Duration, loc *time.Location, log *zap.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExpirySweeper{
		events:   events,
		interval: interval,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single pass and returns the number of events expired.
func (s *ExpirySweeper) Sweep(ctx context.Context) int64 {
	cutoff := s.now().In(s.loc).Format("2006-01-02 15:04")
	n, err := s.events.ExpireBefore(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("expire past events", zap.String("cutoff", cutoff), zap.Error(err))
		}
		return 0
	}
	if n > 0 {
		s.log.Info("expired past events", zap.Int64("count", n), zap.String("cutoff", cutoff))
	}
	metrics.TrackExpired(n)
	return n
}
