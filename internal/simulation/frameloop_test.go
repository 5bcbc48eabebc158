package simulation

import (
	"math"
	"testing"
	"time"
)

func fakeClock(start time.Time, steps ...time.Duration) func() time.Time {
	calls := 0
	return func() time.Time {
		if calls == 0 {
			calls++
			return start
		}
		t := start
		for i := 0; i < calls && i < len(steps); i++ {
			t = t.Add(steps[i])
		}
		calls++
		return t
	}
}

func TestFrameLoopFirstTickReportsZeroDelta(t *testing.T) {
	start := time.Now()
	loop := NewFrameLoop(fakeClock(start, 16*time.Millisecond))
	dt, adjusted := loop.Tick()
	//1.- The first call only seeds lastT; there is no prior frame to diff against.
	if dt != 0 || adjusted != 0 {
		t.Fatalf("expected zero delta on first tick, got dt=%f adjusted=%f", dt, adjusted)
	}
}

func TestFrameLoopComputesAdjustedDt(t *testing.T) {
	start := time.Now()
	loop := NewFrameLoop(fakeClock(start, 16*time.Millisecond, 16*time.Millisecond))
	loop.Tick()
	dt, adjusted := loop.Tick()
	if math.Abs(dt-0.016) > 1e-6 {
		t.Fatalf("expected dt near 0.016, got %f", dt)
	}
	if math.Abs(adjusted-dt*AdjustedDtScale) > 1e-9 {
		t.Fatalf("expected adjusted dt = dt * 60, got %f", adjusted)
	}
}

func TestFrameLoopCapsLongDelta(t *testing.T) {
	start := time.Now()
	loop := NewFrameLoop(fakeClock(start, 5*time.Second))
	loop.Tick()
	dt, _ := loop.Tick()
	if dt != MaxDeltaSeconds {
		t.Fatalf("expected delta capped at %f, got %f", MaxDeltaSeconds, dt)
	}
}

func TestFrameLoopPauseReturnsZeroAndFreezesClock(t *testing.T) {
	start := time.Now()
	loop := NewFrameLoop(fakeClock(start, 16*time.Millisecond, 5*time.Second))
	loop.Tick()
	loop.Pause()
	dt, adjusted := loop.Tick()
	if dt != 0 || adjusted != 0 {
		t.Fatalf("expected zero delta while paused, got dt=%f adjusted=%f", dt, adjusted)
	}
	if !loop.Paused() {
		t.Fatal("expected loop to report paused")
	}
}

func TestFrameLoopResumeStartsFreshDelta(t *testing.T) {
	start := time.Now()
	loop := NewFrameLoop(fakeClock(start, 16*time.Millisecond, 5*time.Second, 16*time.Millisecond))
	loop.Tick()
	loop.Pause()
	loop.Tick()
	loop.Resume()
	dt, _ := loop.Tick()
	//1.- Resume resets lastT, so the tick right after it always reports zero.
	if dt != 0 {
		t.Fatalf("expected zero delta on the tick immediately after Resume, got %f", dt)
	}
}
