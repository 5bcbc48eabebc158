package simulation

import (
	"testing"
	"time"
)

func TestTickMonitorAccumulatesAverageAndMax(t *testing.T) {
	m := NewTickMonitor(0)
	m.Observe(10 * time.Millisecond)
	m.Observe(20 * time.Millisecond)
	snap := m.Snapshot()
	if snap.Samples != 2 {
		t.Fatalf("expected 2 samples, got %d", snap.Samples)
	}
	if snap.Average != 15*time.Millisecond {
		t.Fatalf("expected average 15ms, got %v", snap.Average)
	}
	if snap.Max != 20*time.Millisecond {
		t.Fatalf("expected max 20ms, got %v", snap.Max)
	}
	if snap.Last != 20*time.Millisecond {
		t.Fatalf("expected last 20ms, got %v", snap.Last)
	}
}

func TestTickMonitorCountsOverrunsPastBudget(t *testing.T) {
	m := NewTickMonitor(16 * time.Millisecond)
	m.Observe(10 * time.Millisecond)
	m.Observe(25 * time.Millisecond)
	m.Observe(30 * time.Millisecond)
	if got := m.Snapshot().Overruns; got != 2 {
		t.Fatalf("expected 2 overruns past a 16ms budget, got %d", got)
	}
}

func TestTickMonitorZeroBudgetDisablesOverrunTracking(t *testing.T) {
	m := NewTickMonitor(0)
	m.Observe(time.Second)
	if got := m.Snapshot().Overruns; got != 0 {
		t.Fatalf("expected overrun tracking disabled for a non-positive budget, got %d", got)
	}
}

func TestTickMonitorResetClearsOverruns(t *testing.T) {
	m := NewTickMonitor(16 * time.Millisecond)
	m.Observe(25 * time.Millisecond)
	m.Reset()
	snap := m.Snapshot()
	if snap.Overruns != 0 || snap.Samples != 0 {
		t.Fatalf("expected Reset to clear overruns and samples, got %+v", snap)
	}
}

func TestNilTickMonitorIsSafe(t *testing.T) {
	var m *TickMonitor
	m.Observe(time.Second)
	m.Reset()
	if snap := m.Snapshot(); snap != (TickMetricsSnapshot{}) {
		t.Fatalf("expected zero-value snapshot from nil monitor, got %+v", snap)
	}
}
