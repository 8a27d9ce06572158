// Package scheduler runs background jobs on a fixed interval.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner for the periodic price refresh job.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a stopped Scheduler. Jobs are protected against panics so a
// failing refresh cannot take the server down.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
	}
}

// AddEvery schedules fn to run on the given interval. The job gets a fresh
// context bounded by the interval so a hung run cannot pile up behind the
// next one.
func (s *Scheduler) AddEvery(interval time.Duration, name string, fn func(ctx context.Context) error) {
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Printf("Scheduled job %s failed: %v", name, err)
		}
	}))
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
