package car

import (
	"math"

	"drivesim/internal/gameplay"
	"drivesim/internal/input"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

// WithSuspensionCurve overrides the default x^2.5 compression response.
func WithSuspensionCurve(curve SuspensionCurve) Option {
	return func(o *Orchestrator) { o.suspensionCurve = curve }
}

// WithSlipModel overrides the default StatelessSlipModel, e.g. to reproduce
// the earlier "sticky" slip behavior.
func WithSlipModel(model SlipModel) Option {
	return func(o *Orchestrator) { o.slipModel = model }
}

// WheelFrame is the per-wheel output of a Step: its world transform and
// whether it emitted a skid mark this frame.
type WheelFrame struct {
	Transform vecmath.Isometry
	HasSkid   bool
	SkidPoint vecmath.Vec3
}

// StepResult is everything a Step produced, ready for Snapshot assembly.
type StepResult struct {
	ChassisPose vecmath.Isometry
	Wheels      [4]WheelFrame
	State       State
}

// Orchestrator runs the wheel probe, suspension, tire, and aero models in
// the fixed per-frame order and updates the smoothed drive/turn state. It
// holds only a Physics Oracle handle for the chassis; all dynamics state
// lives in the Oracle.
type Orchestrator struct {
	oracle   *oracle.Oracle
	chassis  oracle.Handle
	tunables gameplay.TunableSet

	suspensionCurve SuspensionCurve
	slipModel       SlipModel

	state State
}

// NewOrchestrator constructs an Orchestrator bound to chassis within o,
// using tunables for every named constant.
func NewOrchestrator(o *oracle.Oracle, chassis oracle.Handle, tunables gameplay.TunableSet, opts ...Option) *Orchestrator {
	orch := &Orchestrator{
		oracle:          o,
		chassis:         chassis,
		tunables:        tunables,
		suspensionCurve: DefaultSuspensionCurve,
		slipModel:       StatelessSlipModel{},
	}
	for _, opt := range opts {
		opt(orch)
	}
	return orch
}

// State returns a copy of the current smoothed car state.
func (orch *Orchestrator) State() State { return orch.state }

// ChassisHandle returns the oracle handle of the chassis this orchestrator
// drives, for callers (e.g. the camera) that need the chassis's live
// velocity directly from the oracle.
func (orch *Orchestrator) ChassisHandle() oracle.Handle { return orch.chassis }

// resolveDriveInput implements step 3: shift OR (W AND S) -> HardBraking;
// else W -> Accelerating; else S -> Reversing; else Coasting.
func resolveDriveInput(in input.State) DriveInput {
	switch {
	case in.ShiftPressed || (in.WPressed && in.SPressed):
		return HardBraking
	case in.WPressed:
		return Accelerating
	case in.SPressed:
		return Reversing
	default:
		return Coasting
	}
}

// resolveTurnInput implements step 4: A AND !D -> Left; !A AND D -> Right;
// else None.
func resolveTurnInput(in input.State) TurnInput {
	switch {
	case in.APressed && !in.DPressed:
		return TurnLeft
	case !in.APressed && in.DPressed:
		return TurnRight
	default:
		return TurnNone
	}
}

// Step runs the full per-frame sequence (§4.7): wheel probe, drive/turn
// intent resolution, throttle/turn smoothing, suspension+tire impulses,
// aero, and per-wheel transform assembly. dt is the raw (un-adjusted)
// timestep in seconds; adjustedDt = dt * 60.
func (orch *Orchestrator) Step(in input.State, dt, adjustedDt float64) StepResult {
	//1.- Snapshot chassis pose; velocity is read on demand via the oracle.
	chassisPose := orch.oracle.Position(orch.chassis)

	//2.- Ray-cast all four wheels and update wheels_grounded.
	pipeline := orch.oracle.QueryPipeline(orch.chassis)
	hits, grounded := ProbeWheels(pipeline, chassisPose, orch.tunables)
	orch.state.WheelsGrounded = grounded

	//3.- Resolve drive intent.
	orch.state.DriveIntent = resolveDriveInput(in)

	//4.- Resolve turn intent.
	orch.state.TurnIntent = resolveTurnInput(in)

	//5.- Smooth turn_angle.
	groundSpeedTimesDt := orch.oracle.LinearVelocity(orch.chassis).Length() * adjustedDt
	maxRadiusDeg, responseDegPerUnit := orch.tunables.SteeringRadiusSlowDeg, orch.tunables.SteeringResponseSlowDegPerUnit
	if groundSpeedTimesDt > orch.tunables.SteeringSpeedThreshold {
		maxRadiusDeg, responseDegPerUnit = orch.tunables.SteeringRadiusFastDeg, orch.tunables.SteeringResponseFastDegPerUnit
	}
	maxRadiusRad := degToRad(maxRadiusDeg)
	responseRadPerUnit := degToRad(responseDegPerUnit)
	rate := responseRadPerUnit * adjustedDt
	switch orch.state.TurnIntent {
	case TurnLeft:
		orch.state.TurnAngleRad = orch.state.TurnAngleRad*(1-rate) + maxRadiusRad*rate
	case TurnRight:
		orch.state.TurnAngleRad = orch.state.TurnAngleRad*(1-rate) + (-maxRadiusRad)*rate
	default:
		orch.state.TurnAngleRad = orch.state.TurnAngleRad * (1 - 1.5*rate)
	}

	//6.- Smooth throttle.
	target := 0.0
	switch orch.state.DriveIntent {
	case Accelerating:
		target = orch.tunables.AccelerationMps2
	case Reversing:
		target = -0.8 * orch.tunables.AccelerationMps2
	}
	throttleRate := orch.tunables.ThrottleResponse * adjustedDt
	orch.state.Throttle = orch.state.Throttle*(1-throttleRate) + target*throttleRate

	//7.- Apply suspension and tire impulses; record final wheel world positions.
	maxDistance := orch.tunables.SuspensionMaxTravelM + orch.tunables.WheelRadiusM
	var wheels [4]WheelFrame
	var slipping [4]bool
	for i := WheelIndex(0); i < 4; i++ {
		hit := hits[i]
		ApplySuspension(orch.oracle, orch.chassis, chassisPose, hit, orch.tunables, orch.suspensionCurve, adjustedDt)

		var wheelPos vecmath.Vec3
		if hit.Grounded {
			wheelPos = hit.RayOrigin.Add(hit.RayDir.Scale(hit.Distance - orch.tunables.WheelRadiusM))
			result := ApplyTire(orch.oracle, orch.chassis, chassisPose, hit, i, orch.state.TurnAngleRad, orch.state.Throttle, orch.state.WheelsSlipping[i], orch.tunables, orch.slipModel, adjustedDt)
			slipping[i] = result.Slipping
			wheels[i].HasSkid = result.HasSkid
			wheels[i].SkidPoint = result.SkidPoint
		} else {
			wheelPos = hit.RayOrigin.Add(hit.RayDir.Scale(maxDistance))
		}

		rotation := chassisPose.Rotation
		if i.IsFront() {
			rotation = chassisPose.Rotation.Mul(vecmath.FromAxisAngle(vecmath.Up, orch.state.TurnAngleRad))
		}
		wheels[i].Transform = vecmath.NewIsometry(wheelPos, rotation)
	}
	orch.state.WheelsSlipping = slipping

	//8.- Apply aero.
	ApplyAero(orch.oracle, orch.chassis, chassisPose, grounded, orch.tunables, adjustedDt)

	return StepResult{ChassisPose: chassisPose, Wheels: wheels, State: orch.state}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
