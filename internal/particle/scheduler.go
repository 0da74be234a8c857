package particle

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs one repeating task at a time.
// Starting a new task cancels the old one and waits for it to exit, so two
// tasks never run side by side and a task never overlaps itself.
type Scheduler struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	period time.Duration
}

// Start cancels any running task and calls fn every period until ctx is
// cancelled or Stop is called. A non-positive period only stops.
func (s *Scheduler) Start(ctx context.Context, period time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if period <= 0 || fn == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.period = period

	go func() {
		defer close(done)
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick may have raced with cancellation.
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
}

// Stop cancels the running task, if any, and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.period = 0
}

// Running reports whether a task is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Period returns the armed task's period, or 0 when idle.
func (s *Scheduler) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}
