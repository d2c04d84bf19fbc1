// Package schedule provides a lightweight interval scheduler, used for the
// nightly purge of stale cart items.
//
//	schedule.Every(24 * time.Hour).NoOverlap().Run(purgeCarts)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/bistro/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every returns a builder for a task that runs once per interval.
func Every(interval time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: interval}}
}

// NoOverlap skips a tick while the previous run is still in flight.
func (s *Schedule) NoOverlap() *Schedule {
	s.e.noOverlap = true
	return s
}

// Run registers the task. The first run happens one interval after Start.
func (s *Schedule) Run(task Task) {
	s.e.task = task
	regMu.Lock()
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start launches the scheduler loop. It ticks every second and fires due
// entries until ctx is cancelled. Call once at boot.
func Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				tick(now)
			}
		}
	}()
	logger.Info("schedule: started", "entries", len(entries))
}

// Flush clears all registered entries. Useful in tests.
func Flush() {
	regMu.Lock()
	entries = nil
	regMu.Unlock()
}

func tick(now time.Time) {
	regMu.Lock()
	current := make([]*entry, len(entries))
	copy(current, entries)
	regMu.Unlock()

	for _, e := range current {
		e.mu.Lock()
		if e.lastRun.IsZero() {
			e.lastRun = now
			e.mu.Unlock()
			continue
		}
		due := now.Sub(e.lastRun) >= e.interval
		if !due || (e.noOverlap && e.running) {
			e.mu.Unlock()
			continue
		}
		e.lastRun = now
		e.running = true
		e.mu.Unlock()

		go func(e *entry) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("schedule: task panicked", "panic", r)
				}
				e.mu.Lock()
				e.running = false
				e.mu.Unlock()
			}()
			e.task()
		}(e)
	}
}
