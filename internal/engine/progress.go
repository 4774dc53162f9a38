package engine

import (
	"context"
	"sync"
	"time"
)

// ProgressFunc receives the reference track position and duration in seconds.
type ProgressFunc func(currentSeconds, durationSeconds float64)

// Sampler is the part of a decoder handle the reporter reads.
type Sampler interface {
	Position() time.Duration
	Duration() time.Duration
}

// ProgressReporter periodically samples one track and reports its progress.
type ProgressReporter struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProgressReporter creates a stopped reporter.
func NewProgressReporter(interval time.Duration) *ProgressReporter {
	if interval <= 0 {
		interval = time.Second
	}
	return &ProgressReporter{interval: interval}
}

// Interval returns the sampling cadence.
func (r *ProgressReporter) Interval() time.Duration {
	return r.interval
}

// Start begins sampling ref, replacing any running task.
func (r *ProgressReporter) Start(ref Sampler, onTick ProgressFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel, r.done = cancel, done

	go r.run(ctx, ref, onTick, done)
}

// Stop cancels the task and waits for it to exit. No callback runs after Stop
// returns. Stopping a stopped reporter is a no-op.
func (r *ProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
}

// Running returns true while a task is scheduled.
func (r *ProgressReporter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cancel != nil
}

func (r *ProgressReporter) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel, r.done = nil, nil
}

func (r *ProgressReporter) run(ctx context.Context, ref Sampler, onTick ProgressFunc, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick may race with cancellation; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			onTick(ref.Position().Seconds(), ref.Duration().Seconds())
		}
	}
}
