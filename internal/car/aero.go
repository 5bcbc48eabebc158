package car

import (
	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

// ApplyAero applies quadratic drag (every frame) and speed-proportional
// downforce (gated on at least one grounded wheel, to avoid phantom
// "sticking" mid-air).
func ApplyAero(
	o *oracle.Oracle,
	chassis oracle.Handle,
	chassisPose vecmath.Isometry,
	wheelsGrounded int,
	tunables gameplay.TunableSet,
	adjustedDt float64,
) {
	linVel := o.LinearVelocity(chassis)
	speed := linVel.Length()

	dragImpulse := linVel.Scale(-speed * speed * tunables.DragCoefficient * adjustedDt)
	o.ApplyImpulse(chassis, dragImpulse)

	if wheelsGrounded >= 1 {
		downforce := speed * tunables.DownforceCoefficient * adjustedDt
		carUp := chassisPose.Rotation.Up()
		o.ApplyImpulse(chassis, carUp.Neg().Scale(downforce))
	}
}
