package car

import (
	"testing"

	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

func TestStatelessSlipModelIgnoresPriorState(t *testing.T) {
	model := StatelessSlipModel{}
	if got := model.EffectiveMaxFriction(true, 180); got != 180 {
		t.Fatalf("expected unchanged threshold, got %f", got)
	}
	if got := model.EffectiveMaxFriction(false, 180); got != 180 {
		t.Fatalf("expected unchanged threshold, got %f", got)
	}
}

func TestStickySlipModelReducesThresholdAfterSlip(t *testing.T) {
	model := StickySlipModel{Reduction: 50}
	if got := model.EffectiveMaxFriction(true, 180); got != 130 {
		t.Fatalf("expected reduced threshold 130, got %f", got)
	}
	if got := model.EffectiveMaxFriction(false, 180); got != 180 {
		t.Fatalf("expected unreduced threshold when not previously slipping, got %f", got)
	}
}

func TestStickySlipModelFloorsAtZero(t *testing.T) {
	model := StickySlipModel{Reduction: 500}
	if got := model.EffectiveMaxFriction(true, 180); got != 0 {
		t.Fatalf("expected floor at zero, got %f", got)
	}
}

func TestApplyTireRearWheelTransmitsThrottle(t *testing.T) {
	o := oracle.New(vecmath.Vec3{})
	tunables := gameplay.DefaultTunables()
	chassis := o.InsertDynamic(vecmath.IsometryIdentity, tunables.ChassisMassKg, tunables.ChassisAngularInertia)

	hit := WheelHit{RayOrigin: vecmath.Zero, RayDir: vecmath.Vec3{Y: -1}, Grounded: true, Point: vecmath.Vec3{Z: -1}}
	ApplyTire(o, chassis, vecmath.IsometryIdentity, hit, RearLeft, 0, 20, false, tunables, StatelessSlipModel{}, 1)
	o.Step(0.001)
	v := o.LinearVelocity(chassis)
	if v.Z == 0 {
		t.Fatalf("expected throttle to produce forward impulse on a driven wheel, got %+v", v)
	}
}

func TestApplyTireFrontWheelIgnoresThrottle(t *testing.T) {
	o := oracle.New(vecmath.Vec3{})
	tunables := gameplay.DefaultTunables()
	chassis := o.InsertDynamic(vecmath.IsometryIdentity, tunables.ChassisMassKg, tunables.ChassisAngularInertia)

	hit := WheelHit{RayOrigin: vecmath.Zero, RayDir: vecmath.Vec3{Y: -1}, Grounded: true, Point: vecmath.Vec3{Z: 1}}
	result := ApplyTire(o, chassis, vecmath.IsometryIdentity, hit, FrontLeft, 0, 20, false, tunables, StatelessSlipModel{}, 1)
	_ = result
	o.Step(0.001)
	v := o.LinearVelocity(chassis)
	if v.Z != 0 {
		t.Fatalf("expected no longitudinal impulse from a steered, non-driven wheel, got %+v", v)
	}
}

func TestApplyTireCapsLateralForceNearRest(t *testing.T) {
	o := oracle.New(vecmath.Vec3{})
	tunables := gameplay.DefaultTunables()
	chassis := o.InsertDynamic(vecmath.IsometryIdentity, tunables.ChassisMassKg, tunables.ChassisAngularInertia)
	o.SetLinearVelocity(chassis, vecmath.Vec3{X: 0.05})

	hit := WheelHit{RayOrigin: vecmath.Zero, RayDir: vecmath.Vec3{Y: -1}, Grounded: true, Point: vecmath.Zero}
	ApplyTire(o, chassis, vecmath.IsometryIdentity, hit, FrontLeft, 0, 0, false, tunables, StatelessSlipModel{}, 1)
	o.Step(0.001)

	v := o.LinearVelocity(chassis)
	// Uncapped, the full ~800N grip force applied for one adjustedDt would
	// remove far more than the chassis's existing 0.05 m/s of momentum,
	// reversing its direction. The arrest-impulse cap limits this wheel to
	// a conservative share of what it would take to bring the velocity to
	// exactly zero, so it should decelerate without overshooting past it.
	if v.X <= 0 {
		t.Fatalf("expected lateral force capped well short of reversing velocity, got %+v", v)
	}
	if v.X >= 0.05 {
		t.Fatalf("expected some lateral deceleration to still occur, got %+v", v)
	}
}

func TestApplyTireRecordsSkidWhenSlippingAndFast(t *testing.T) {
	o := oracle.New(vecmath.Vec3{})
	tunables := gameplay.DefaultTunables()
	chassis := o.InsertDynamic(vecmath.IsometryIdentity, tunables.ChassisMassKg, tunables.ChassisAngularInertia)
	o.SetLinearVelocity(chassis, vecmath.Vec3{X: 10})

	hit := WheelHit{RayOrigin: vecmath.Zero, RayDir: vecmath.Vec3{Y: -1}, Grounded: true, Point: vecmath.Zero}
	result := ApplyTire(o, chassis, vecmath.IsometryIdentity, hit, RearLeft, 0, 10000, false, tunables, StatelessSlipModel{}, 1)
	if !result.Slipping {
		t.Fatal("expected extreme throttle demand to exceed max friction and slip")
	}
	if !result.HasSkid {
		t.Fatal("expected a skid point to be recorded while slipping above the speed threshold")
	}
}
