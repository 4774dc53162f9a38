package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

type fixedSampler struct {
	pos, dur time.Duration
}

func (f fixedSampler) Position() time.Duration { return f.pos }
func (f fixedSampler) Duration() time.Duration { return f.dur }

func TestProgressReporterDefaults(t *testing.T) {
	if got := NewProgressReporter(0).Interval(); got != time.Second {
		t.Errorf("Interval() = %v, want 1s", got)
	}
}

func TestProgressReporterTicks(t *testing.T) {
	r := NewProgressReporter(2 * time.Millisecond)

	got := make(chan [2]float64, 1)
	r.Start(fixedSampler{pos: 1500 * time.Millisecond, dur: 3 * time.Second}, func(cur, dur float64) {
		select {
		case got <- [2]float64{cur, dur}:
		default:
		}
	})
	defer r.Stop()

	select {
	case v := <-got:
		if v[0] != 1.5 || v[1] != 3 {
			t.Errorf("tick = %v, want [1.5 3]", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}
	if !r.Running() {
		t.Error("Running() = false while started")
	}
}

func TestProgressReporterStopIsFinal(t *testing.T) {
	r := NewProgressReporter(time.Millisecond)

	var ticks atomic.Int32
	r.Start(fixedSampler{}, func(cur, dur float64) {
		ticks.Add(1)
		time.Sleep(2 * time.Millisecond)
	})
	waitFor(t, func() bool { return ticks.Load() > 0 })

	r.Stop()
	after := ticks.Load()
	time.Sleep(10 * time.Millisecond)

	if got := ticks.Load(); got != after {
		t.Errorf("%d ticks after Stop()", got-after)
	}
	if r.Running() {
		t.Error("Running() = true after Stop()")
	}
	r.Stop()
}

func TestProgressReporterRestart(t *testing.T) {
	r := NewProgressReporter(time.Millisecond)

	var first, second atomic.Int32
	r.Start(fixedSampler{}, func(cur, dur float64) { first.Add(1) })
	waitFor(t, func() bool { return first.Load() > 0 })

	r.Start(fixedSampler{}, func(cur, dur float64) { second.Add(1) })
	stale := first.Load()
	waitFor(t, func() bool { return second.Load() > 0 })
	r.Stop()

	if got := first.Load(); got != stale {
		t.Errorf("replaced callback fired %d more times", got-stale)
	}
}
