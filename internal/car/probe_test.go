package car

import (
	"testing"

	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

func groundedOracle() (*oracle.Oracle, oracle.Handle) {
	o := oracle.New(oracle.DefaultGravity)
	ground := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(ground, oracleNewPlaneField())
	return o, ground
}

func oracleNewPlaneField() oracle.SignedDistanceField {
	return oracle.NewPlaneField(vecmath.Zero, vecmath.Up)
}

func TestProbeWheelsCountsGroundedWheelsOnFlatGround(t *testing.T) {
	o, _ := groundedOracle()
	tunables := gameplay.DefaultTunables()
	//1.- WheelOffsets.Y already places the wheel mounts above the chassis
	// origin (the car's undercarriage reference plane), so resting on flat
	// ground means the origin itself sits at ground level, not one wheel
	// radius above it.
	chassisPose := vecmath.NewIsometry(vecmath.Vec3{}, vecmath.QuatIdentity)
	chassis := o.InsertDynamic(chassisPose, tunables.ChassisMassKg, tunables.ChassisAngularInertia)

	pipeline := o.QueryPipeline(chassis)
	hits, grounded := ProbeWheels(pipeline, chassisPose, tunables)

	if grounded != 4 {
		t.Fatalf("expected all four wheels grounded, got %d (%+v)", grounded, hits)
	}
}

func TestProbeWheelsReportsUngroundedWhenAirborne(t *testing.T) {
	o, _ := groundedOracle()
	tunables := gameplay.DefaultTunables()
	chassisPose := vecmath.NewIsometry(vecmath.Vec3{Y: 50}, vecmath.QuatIdentity)
	chassis := o.InsertDynamic(chassisPose, tunables.ChassisMassKg, tunables.ChassisAngularInertia)

	pipeline := o.QueryPipeline(chassis)
	_, grounded := ProbeWheels(pipeline, chassisPose, tunables)
	if grounded != 0 {
		t.Fatalf("expected zero grounded wheels high in the air, got %d", grounded)
	}
}
