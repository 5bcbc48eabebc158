package oracle

import (
	"math"
	"testing"

	"drivesim/internal/vecmath"
)

func TestInsertDynamicAssignsDistinctHandles(t *testing.T) {
	o := New(DefaultGravity)
	a := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	b := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	if a == b {
		t.Fatalf("expected distinct handles, got %+v and %+v", a, b)
	}
}

func TestRemoveThenResolveStaleHandlePanics(t *testing.T) {
	o := New(DefaultGravity)
	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.Remove(h)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic resolving a removed handle")
		}
	}()
	o.Position(h)
}

func TestInsertReusesFreedSlotWithNewGeneration(t *testing.T) {
	o := New(DefaultGravity)
	first := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.Remove(first)
	second := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	if second.generation == first.generation {
		t.Fatalf("expected a fresh generation for the reused slot")
	}
}

func TestStepAppliesGravityToFreeFallingBody(t *testing.T) {
	o := New(vecmath.Vec3{Y: -10})
	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.Step(0.1)
	v := o.LinearVelocity(h)
	if math.Abs(v.Y+1) > 1e-9 {
		t.Fatalf("expected downward velocity -1 after one step, got %f", v.Y)
	}
}

func TestApplyImpulseChangesVelocityByImpulseOverMass(t *testing.T) {
	o := New(vecmath.Vec3{})
	h := o.InsertDynamic(vecmath.IsometryIdentity, 2, 1)
	o.ApplyImpulse(h, vecmath.Vec3{X: 4})
	o.Step(1)
	v := o.LinearVelocity(h)
	if math.Abs(v.X-2) > 1e-9 {
		t.Fatalf("expected velocity 2 (impulse/mass), got %f", v.X)
	}
}

func TestImpulseIsClearedAfterStep(t *testing.T) {
	o := New(vecmath.Vec3{})
	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.ApplyImpulse(h, vecmath.Vec3{X: 5})
	o.Step(1)
	o.Step(1)
	v := o.LinearVelocity(h)
	if math.Abs(v.X-5) > 1e-9 {
		t.Fatalf("expected impulse consumed once, velocity to stay at 5, got %f", v.X)
	}
}

func TestApplyImpulseAtPointInducesAngularVelocity(t *testing.T) {
	o := New(vecmath.Vec3{})
	h := o.InsertDynamic(vecmath.IsometryIdentity, 10, 1)
	//1.- Push sideways at a point offset along +Z; torque = r x impulse should spin about Y.
	o.ApplyImpulseAtPoint(h, vecmath.Vec3{X: 1}, vecmath.Vec3{Z: 1})
	o.Step(1)
	av := o.AngularVelocity(h)
	if math.Abs(av.Y) < 1e-9 {
		t.Fatalf("expected non-zero angular velocity about Y, got %+v", av)
	}
}

func TestVelocityAtPointIncludesRotationalComponent(t *testing.T) {
	o := New(vecmath.Vec3{})
	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.SetAngularVelocity(h, vecmath.Vec3{Y: 1})
	got := o.VelocityAtPoint(h, vecmath.Vec3{Z: 1})
	//1.- omega x r for omega=(0,1,0), r=(0,0,1) is (1,0,0).
	if math.Abs(got.X-1) > 1e-9 {
		t.Fatalf("expected velocity-at-point X near 1, got %+v", got)
	}
}

func TestStepSkipsStaticBodies(t *testing.T) {
	o := New(vecmath.Vec3{Y: -10})
	h := o.InsertStatic(vecmath.IsometryIdentity)
	o.Step(1)
	if got := o.Position(h); got != vecmath.IsometryIdentity {
		t.Fatalf("expected static body to stay put, got %+v", got)
	}
}

func TestQueryPipelineRaycastFindsNearestStaticField(t *testing.T) {
	o := New(DefaultGravity)
	ground := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(ground, NewPlaneField(vecmath.Zero, vecmath.Up))

	pipeline := o.QueryPipeline()
	hit, result := pipeline.Raycast(vecmath.Vec3{Y: 5}, vecmath.Vec3{Y: -1}, 100)
	if !hit {
		t.Fatal("expected a hit against the ground plane")
	}
	if result.Handle != ground {
		t.Fatalf("expected hit handle to be the ground body, got %+v", result.Handle)
	}
}

func TestQueryPipelineExcludesGivenHandle(t *testing.T) {
	o := New(vecmath.Vec3{})
	ground := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(ground, NewPlaneField(vecmath.Zero, vecmath.Up))

	pipeline := o.QueryPipeline(ground)
	hit, _ := pipeline.Raycast(vecmath.Vec3{Y: 5}, vecmath.Vec3{Y: -1}, 100)
	if hit {
		t.Fatal("expected excluded collider to be skipped")
	}
}

func TestDynamicColliderIsPushedOutOfStaticWall(t *testing.T) {
	o := New(vecmath.Vec3{})
	wall := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(wall, NewPlaneField(vecmath.Vec3{X: 1}, vecmath.Vec3{X: -1}))

	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.AttachDynamicCollider(h, 2)
	//1.- Plane faces -X from x=1; a radius-2 collider at the world origin
	// penetrates by 1m and should be shoved back to x<=-1.
	o.Step(1.0 / 60)

	pos := o.Position(h).Translation
	if pos.X > -1+1e-6 {
		t.Fatalf("expected collider pushed clear of the wall, got x=%f", pos.X)
	}
}

func TestDynamicColliderVelocityIntoWallIsZeroed(t *testing.T) {
	o := New(vecmath.Vec3{})
	wall := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(wall, NewPlaneField(vecmath.Vec3{X: 5}, vecmath.Vec3{X: -1}))

	h := o.InsertDynamic(vecmath.Isometry{Translation: vecmath.Vec3{X: 4}, Rotation: vecmath.QuatIdentity}, 1, 1)
	o.AttachDynamicCollider(h, 1)
	o.SetLinearVelocity(h, vecmath.Vec3{X: 10})
	o.Step(1.0 / 60)

	v := o.LinearVelocity(h)
	if v.X > 1e-9 {
		t.Fatalf("expected inward velocity component zeroed on contact, got %f", v.X)
	}
}

func TestUncollideredBodyPassesThroughStaticWall(t *testing.T) {
	o := New(vecmath.Vec3{})
	wall := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(wall, NewPlaneField(vecmath.Vec3{X: 1}, vecmath.Vec3{X: -1}))

	h := o.InsertDynamic(vecmath.IsometryIdentity, 1, 1)
	o.Step(1.0 / 60)

	pos := o.Position(h).Translation
	if pos.X != 0 {
		t.Fatalf("expected a body with no attached collider to be unaffected, got x=%f", pos.X)
	}
}
