// Package background triggers sync runs without user interaction, either
// on a fixed interval or when the watched media directories change.
package background

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/logging"
)

// DefaultInterval is the periodic trigger cadence.
const DefaultInterval = 15 * time.Minute

// Result summarizes one background attempt for the scheduler's caller.
type Result int

const (
	// ResultNoData means the run completed but uploaded nothing, was
	// denied by the settings gate, or yielded to an already active run.
	ResultNoData Result = iota
	// ResultNewData means at least one file was uploaded.
	ResultNewData
	// ResultFailed means the run errored.
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultNewData:
		return "new_data"
	case ResultFailed:
		return "failed"
	default:
		return "no_data"
	}
}

// Syncer is the orchestrator surface the scheduler drives.
type Syncer interface {
	Run(ctx context.Context, background bool) (int, error)
}

// Scheduler fires background sync runs on a fixed interval.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	log      logging.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, log logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{syncer: syncer, interval: interval, log: log}
}

// RunOnce performs a single background attempt. An already running sync
// is not a failure; this trigger simply had nothing to do.
func (s *Scheduler) RunOnce(ctx context.Context) Result {
	count, err := s.syncer.Run(ctx, true)
	switch {
	case errors.Is(err, common.ErrSyncInProgress):
		s.log.Debug(ctx, "background trigger skipped, sync already running")
		return ResultNoData
	case err != nil:
		s.log.Error(ctx, "background sync failed", "error", err)
		return ResultFailed
	case count > 0:
		return ResultNewData
	default:
		return ResultNoData
	}
}

// Run fires RunOnce every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info(ctx, "background scheduler started", "interval", s.interval)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "background scheduler stopped")
			return nil
		case <-t.C:
			res := s.RunOnce(ctx)
			s.log.Debug(ctx, "background trigger finished", "result", res.String())
		}
	}
}
