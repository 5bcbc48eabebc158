// Package snapshot assembles the per-frame, read-only payload handed to the
// renderer. Grounded on the clone-out discipline of the teacher's
// VehicleStore.Get (never hand back a live reference), even though this
// module's Builder has no concurrent store to protect, because the
// convention is cheap and matches the teacher's habit for anything crossing
// a consumer boundary.
package snapshot

import "drivesim/internal/vecmath"

// RenderSnapshot is a plain value, not a reference: copying it is cheap (a
// handful of isometries and optional points) and the renderer must treat it
// as read-only. There is no back-channel; nothing here can mutate
// simulation state.
type RenderSnapshot struct {
	CarTransform      vecmath.Isometry
	WheelTransforms   [4]vecmath.Isometry
	SkidContactPoints [4]*vecmath.Vec3
	DebugString       string
}

// Builder assembles one RenderSnapshot per frame from the orchestrator's
// per-wheel transforms and skid points.
type Builder struct {
	debugString string
}

// SetDebugText updates the optional debug overlay text included in the next
// assembled snapshot.
func (b *Builder) SetDebugText(text string) { b.debugString = text }

// WheelInput is the minimal per-wheel data Build needs, decoupled from the
// car package's richer WheelFrame so this package has no import-cycle risk
// on car.
type WheelInput struct {
	Transform vecmath.Isometry
	HasSkid   bool
	SkidPoint vecmath.Vec3
}

// Build assembles a fresh, independent RenderSnapshot. The returned value
// shares no mutable state with carTransform/wheels; SkidContactPoints
// entries are either nil or point at a freshly allocated copy.
func (b *Builder) Build(carTransform vecmath.Isometry, wheels [4]WheelInput) RenderSnapshot {
	snap := RenderSnapshot{
		CarTransform: carTransform,
		DebugString:  b.debugString,
	}
	for i, w := range wheels {
		snap.WheelTransforms[i] = w.Transform
		if w.HasSkid {
			point := w.SkidPoint
			snap.SkidContactPoints[i] = &point
		}
	}
	return snap
}
