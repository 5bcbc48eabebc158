// Package simulation carries the frame-timing and tick-metrics concerns
// forward from the teacher's server-authoritative tick loop, reshaped for a
// host render-callback model instead of a ticker-driven accumulator.
package simulation

import "time"

// MaxDeltaSeconds bounds the wall-clock delta fed into the physics step,
// preventing tunnelling through colliders after a long pause or a dropped
// frame.
const MaxDeltaSeconds = 0.1

// AdjustedDtScale is the "60 Hz = 1.0" reference every per-frame lerp and
// impulse in the car model is tuned against.
const AdjustedDtScale = 60.0

// FrameLoop measures the wall-clock delta between successive host
// redraw-requested callbacks, instead of the teacher's time.Ticker-driven
// fixed-step accumulator: there is no server tick rate to hold steady here,
// only a single render thread calling Tick once per frame.
type FrameLoop struct {
	now func() time.Time

	paused  bool
	lastT   time.Time
	haveLast bool
}

// NewFrameLoop constructs a FrameLoop using the given time source (real
// time.Now in production, a fake clock in tests).
func NewFrameLoop(now func() time.Time) *FrameLoop {
	if now == nil {
		now = time.Now
	}
	return &FrameLoop{now: now}
}

// Tick reports the elapsed wall-clock time since the previous Tick (capped
// at MaxDeltaSeconds) and the adjusted_dt = dt * 60 convention the rest of
// the simulation is tuned against. While paused it returns zero for both
// and does not advance lastT, so the subsequent Resume starts from a fresh
// delta rather than one inflated by the paused interval.
func (l *FrameLoop) Tick() (dt, adjustedDt float64) {
	now := l.now()
	if l.paused {
		return 0, 0
	}
	if !l.haveLast {
		l.lastT = now
		l.haveLast = true
		return 0, 0
	}
	raw := now.Sub(l.lastT).Seconds()
	l.lastT = now
	if raw < 0 {
		raw = 0
	}
	if raw > MaxDeltaSeconds {
		raw = MaxDeltaSeconds
	}
	return raw, raw * AdjustedDtScale
}

// Pause suspends Tick, matching the "skip the entire per-frame sequence"
// semantics for a host pause or unfocus signal.
func (l *FrameLoop) Pause() { l.paused = true }

// Resume un-suspends Tick; the next call to Tick reports a zero delta and
// resynchronizes lastT, so the following call reports a fresh delta rather
// than one spanning the paused interval.
func (l *FrameLoop) Resume() {
	l.paused = false
	l.haveLast = false
}

// Paused reports whether the loop is currently suspended.
func (l *FrameLoop) Paused() bool { return l.paused }
