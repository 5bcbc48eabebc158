package car

import (
	"math"

	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

// SlipModel resolves the effective max-friction threshold for a wheel this
// frame, given whether it was slipping last frame. Exists because an
// earlier version of the source this package is grounded on reduced
// max_friction for a wheel that slipped last frame ("sticky" slip) and the
// final shipped version dropped that reduction; both are offered as
// interchangeable strategies rather than picking one silently.
type SlipModel interface {
	EffectiveMaxFriction(wasSlipping bool, baseMaxFriction float64) float64
}

// StatelessSlipModel applies no memory: the threshold test is against
// baseMaxFriction every frame regardless of prior state. This matches the
// final shipped behavior.
type StatelessSlipModel struct{}

// EffectiveMaxFriction always returns baseMaxFriction unchanged.
func (StatelessSlipModel) EffectiveMaxFriction(wasSlipping bool, baseMaxFriction float64) float64 {
	return baseMaxFriction
}

// StickySlipModel reduces the effective max friction by Reduction for a
// wheel that slipped last frame, matching the earlier-version "sticky"
// behavior the design notes flag as unclear whether its removal was
// intentional.
type StickySlipModel struct {
	Reduction float64
}

// EffectiveMaxFriction subtracts Reduction when wasSlipping, floored at
// zero so a misconfigured Reduction cannot invert the threshold.
func (s StickySlipModel) EffectiveMaxFriction(wasSlipping bool, baseMaxFriction float64) float64 {
	if !wasSlipping {
		return baseMaxFriction
	}
	reduced := baseMaxFriction - s.Reduction
	if reduced < 0 {
		return 0
	}
	return reduced
}

// TireResult reports what ApplyTire observed for one wheel this frame.
type TireResult struct {
	Slipping  bool
	SkidPoint vecmath.Vec3
	HasSkid   bool
}

// ApplyTire computes and applies lateral/longitudinal tire impulses for one
// grounded wheel. hit must be Grounded; callers skip ungrounded wheels.
func ApplyTire(
	o *oracle.Oracle,
	chassis oracle.Handle,
	chassisPose vecmath.Isometry,
	hit WheelHit,
	index WheelIndex,
	turnAngleRad float64,
	throttle float64,
	wasSlipping bool,
	tunables gameplay.TunableSet,
	slip SlipModel,
	adjustedDt float64,
) TireResult {
	chassisForward := chassisPose.Rotation.Forward()
	carUp := chassisPose.Rotation.Up()

	wheelForward := chassisForward
	if index.IsFront() && math.Abs(turnAngleRad) > tunables.TurnAngleDeadBandRad {
		wheelForward = vecmath.FromAxisAngle(vecmath.Up, turnAngleRad).Rotate(chassisForward)
	}
	wheelRight := wheelForward.Cross(carUp).Normalize()

	contactPoint := hit.Point
	tireVelocity := o.VelocityAtPoint(chassis, contactPoint)
	lateralVelocity := tireVelocity.Dot(wheelRight)

	lateralForce := -tireVelocity.Normalize().Dot(wheelRight) * tunables.WheelGripCoefficient

	//1.- tireVelocity.Normalize() always yields a unit vector, even when the
	// tire is nearly at rest, so lateralForce above keeps its full ~grip
	// magnitude right down to zero speed instead of shrinking with it. All
	// four wheels apply their impulse before one combined Step integration,
	// so without a cap, correlated wheels (e.g. a pure lateral drift) can
	// together remove more momentum than the chassis actually has, overshoot
	// past zero, and chatter indefinitely rather than settle. Cap each
	// wheel's lateral force at its conservative 1/wheelCount share of the
	// impulse that would fully arrest lateralVelocity this step; above that
	// crossover speed the cap never binds and full Coulomb slip is
	// unaffected.
	const wheelCount = 4
	if maxArrest := math.Abs(lateralVelocity) * tunables.ChassisMassKg / (wheelCount * adjustedDt); math.Abs(lateralForce) > maxArrest {
		lateralForce = math.Copysign(maxArrest, lateralForce)
	}
	longitudinalForce := 0.0
	if index.IsDriven() {
		longitudinalForce = throttle
	}

	maxFriction := slip.EffectiveMaxFriction(wasSlipping, tunables.MaxFrictionImpulse)

	forceSq := lateralForce*lateralForce + longitudinalForce*longitudinalForce
	slipping := forceSq > maxFriction*maxFriction
	if slipping {
		magnitude := math.Sqrt(forceSq)
		if magnitude > 1e-12 {
			scale := maxFriction * tunables.SlipClampScale / magnitude
			lateralForce *= scale
			longitudinalForce *= scale
		}
		longitudinalForce *= tunables.DriftLongitudinalBoost
	}

	o.ApplyImpulseAtPoint(chassis, wheelRight.Scale(lateralForce*adjustedDt), contactPoint)
	o.ApplyImpulseAtPoint(chassis, wheelForward.Scale(longitudinalForce*adjustedDt), contactPoint)

	result := TireResult{Slipping: slipping}
	chassisSpeed := o.LinearVelocity(chassis).Length()
	if slipping && chassisSpeed > tunables.SkidMinSpeedMps {
		result.HasSkid = true
		result.SkidPoint = contactPoint
	}
	return result
}
