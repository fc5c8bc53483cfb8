package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a CollectJob on a cron schedule evaluated in a fixed zone.
type Scheduler struct {
	cron   *cron.Cron
	job    *CollectJob
	logger *slog.Logger
}

// NewScheduler validates schedule and timezone and registers job.
func NewScheduler(schedule, timezone string, job *CollectJob, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		job:    job,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		job.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", schedule, err)
	}
	return s, nil
}

// Next returns the next activation time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Run starts the schedule and blocks until ctx is canceled. It then waits
// for a run in progress to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Time("next_run", s.Next()))

	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
