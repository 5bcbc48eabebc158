package simulation

import (
	"sync"
	"time"
)

// TickMetricsSnapshot summarises observed frame durations.
type TickMetricsSnapshot struct {
	Samples  int
	Average  time.Duration
	Max      time.Duration
	Last     time.Duration
	Overruns int
}

// AverageFPS derives the frames-per-second equivalent of the sampled tick duration.
func (s TickMetricsSnapshot) AverageFPS() float64 {
	if s.Average <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Average)
}

// TickMonitor accumulates timing statistics for the simulation's per-frame
// OnFrame work.
type TickMonitor struct {
	mu       sync.Mutex
	budget   time.Duration
	samples  int
	total    time.Duration
	max      time.Duration
	last     time.Duration
	overruns int
}

// NewTickMonitor constructs an empty monitor ready to collect samples.
// budget is the frame time OnFrame is expected to fit within (e.g. the
// host's redraw cadence); a non-positive budget disables overrun tracking,
// matching Observe's own no-op-on-non-positive-duration contract.
func NewTickMonitor(budget time.Duration) *TickMonitor {
	return &TickMonitor{budget: budget}
}

// Observe records the duration of a completed OnFrame call.
func (m *TickMonitor) Observe(duration time.Duration) {
	if m == nil || duration <= 0 {
		return
	}
	m.mu.Lock()
	// //1.- Accumulate the sample count and aggregate duration for average calculations.
	m.samples++
	m.total += duration
	// //2.- Track the worst-case tick so a host can spot spikes quickly.
	if duration > m.max {
		m.max = duration
	}
	// //3.- Remember the latest tick for real-time dashboards.
	m.last = duration
	// //4.- Count frames that missed the host's assumed redraw cadence.
	if m.budget > 0 && duration > m.budget {
		m.overruns++
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of the aggregated tick statistics.
func (m *TickMonitor) Snapshot() TickMetricsSnapshot {
	if m == nil {
		return TickMetricsSnapshot{}
	}
	m.mu.Lock()
	samples := m.samples
	total := m.total
	max := m.max
	last := m.last
	overruns := m.overruns
	m.mu.Unlock()

	average := time.Duration(0)
	if samples > 0 {
		average = total / time.Duration(samples)
	}
	return TickMetricsSnapshot{Samples: samples, Average: average, Max: max, Last: last, Overruns: overruns}
}

// Reset clears the accumulated statistics so a fresh drive can begin cleanly.
func (m *TickMonitor) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	// //1.- Zero out all internal counters so subsequent snapshots start from scratch.
	m.samples = 0
	m.total = 0
	m.max = 0
	m.last = 0
	m.overruns = 0
	m.mu.Unlock()
}
