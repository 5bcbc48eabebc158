package car

import (
	"math"

	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

// SuspensionCurve maps fractional compression (0 fully extended, 1 fully
// compressed) to a spring response multiplier. It must be monotonic, pass
// through (0,0) and (1,1), and be super-linear so the chassis softens near
// the top of travel and stiffens hard near the bottom; DefaultSuspensionCurve
// satisfies this with x^2.5 but the orchestrator accepts any curve meeting
// the contract.
type SuspensionCurve func(compression float64) float64

// DefaultSuspensionCurve is the super-linear x^2.5 response: soft-at-top,
// hard-at-bottom, preventing the chassis from bottoming out without making
// small bumps feel rigid.
func DefaultSuspensionCurve(compression float64) float64 {
	if compression <= 0 {
		return 0
	}
	return math.Pow(compression, 2.5)
}

// ApplySuspension computes and applies the spring+damper impulse for one
// grounded wheel. It is a no-op for an ungrounded hit.
func ApplySuspension(
	o *oracle.Oracle,
	chassis oracle.Handle,
	chassisPose vecmath.Isometry,
	hit WheelHit,
	tunables gameplay.TunableSet,
	curve SuspensionCurve,
	adjustedDt float64,
) {
	if !hit.Grounded {
		return
	}
	if curve == nil {
		curve = DefaultSuspensionCurve
	}
	maxDistance := tunables.SuspensionMaxTravelM + tunables.WheelRadiusM
	compression := (maxDistance - hit.Distance) / maxDistance
	if compression < 0 {
		compression = 0
	}
	if compression > 1 {
		compression = 1
	}

	springImpulse := curve(compression) * tunables.SuspensionStiffness
	pistonVelocity := o.VelocityAtPoint(chassis, hit.RayOrigin).Dot(hit.RayDir)
	damperImpulse := pistonVelocity * tunables.SuspensionDamper

	carUp := chassisPose.Rotation.Up()
	impulse := carUp.Scale((springImpulse + damperImpulse) * adjustedDt)
	o.ApplyImpulseAtPoint(chassis, impulse, hit.RayOrigin)
}
