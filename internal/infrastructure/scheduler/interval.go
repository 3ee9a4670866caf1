package scheduler

import (
	"context"
	"time"

	"SePushMonitor/internal/ports"
)

// IntervalScheduler triggers the job on a fixed period using time.Ticker.
// The first run fires immediately on Start.
type IntervalScheduler struct {
	period time.Duration
	stop   chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler with the given period.
func NewIntervalScheduler(period time.Duration) *IntervalScheduler {
	return &IntervalScheduler{period: period}
}

// Start begins ticking; a second Start without Stop is a no-op.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.stop != nil {
		return nil
	}

	// The goroutine selects on a local copy; Stop may nil the field while
	// the loop is still running.
	stop := make(chan struct{})
	s.stop = stop
	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
