package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestIntervalSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	ticks := make(chan time.Time, 1)

	ctx := context.Background()
	if err := s.Start(ctx, func(at time.Time) { ticks <- at }); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer s.Stop(ctx)

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("first run must fire immediately on Start")
	}
}

func TestIntervalSchedulerStop(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(5 * time.Millisecond)
	ticks := make(chan time.Time, 64)

	ctx := context.Background()
	if err := s.Start(ctx, func(at time.Time) { ticks <- at }); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("scheduler never ran")
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop error: %v", err)
	}

	// Let the goroutine observe the close, then verify quiescence.
	time.Sleep(25 * time.Millisecond)
	for {
		select {
		case <-ticks:
			continue
		default:
		}
		break
	}
	time.Sleep(25 * time.Millisecond)
	select {
	case <-ticks:
		t.Fatal("job ran after Stop")
	default:
	}
}

func TestIntervalSchedulerStopIsReentrant(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	ctx := context.Background()

	// Stop without Start is a no-op, and stopping twice must not panic.
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop before Start: %v", err)
	}
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second Stop error: %v", err)
	}
}
