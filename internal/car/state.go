// Package car implements the ray-cast wheel vehicle model: wheel probing,
// suspension, tire friction, chassis aero, and the per-frame orchestrator
// that sequences them against a Physics Oracle. Grounded on the formulas
// and per-frame step order of the source the rest of this module's
// simulation packages were distilled from.
package car

// DriveInput is the resolved longitudinal driver intent for the current
// frame, recomputed purely from current key state (no history).
type DriveInput int

const (
	Coasting DriveInput = iota
	Accelerating
	HardBraking
	Reversing
)

// TurnInput is the resolved steering intent for the current frame.
type TurnInput int

const (
	TurnNone TurnInput = iota
	TurnLeft
	TurnRight
)

// WheelIndex names the four probed wheel positions in the fixed order the
// tunables' WheelOffsets and every [4]T array in this package follow.
type WheelIndex int

const (
	FrontLeft WheelIndex = iota
	FrontRight
	RearLeft
	RearRight
)

// IsFront reports whether the wheel is one of the two steered wheels.
func (w WheelIndex) IsFront() bool { return w == FrontLeft || w == FrontRight }

// IsDriven reports whether the wheel transmits throttle (rear-wheel drive).
func (w WheelIndex) IsDriven() bool { return w == RearLeft || w == RearRight }

// State is the Orchestrator-owned per-frame vehicle state, recomputed or
// smoothed each frame; never owned by the Physics Oracle.
type State struct {
	Throttle        float64
	TurnAngleRad    float64
	WheelsSlipping  [4]bool
	WheelsGrounded  int
	DriveIntent     DriveInput
	TurnIntent      TurnInput
}
