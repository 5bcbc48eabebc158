package vecmath

import (
	"math"
	"testing"
)

func TestVec3AddSubScale(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 0.5}
	//1.- Addition and subtraction should be inverses of each other.
	if got := a.Add(b).Sub(b); math.Abs(got.X-a.X) > 1e-9 || math.Abs(got.Y-a.Y) > 1e-9 || math.Abs(got.Z-a.Z) > 1e-9 {
		t.Fatalf("Add/Sub not inverse: got %+v", got)
	}
	if got := a.Scale(2); got.X != 2 || got.Y != 4 || got.Z != 6 {
		t.Fatalf("unexpected scale result: %+v", got)
	}
}

func TestVec3CrossIsPerpendicular(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	got := x.Cross(y)
	//1.- x cross y should equal z in a right-handed frame.
	if math.Abs(got.Z-1) > 1e-9 || math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Fatalf("expected +Z axis, got %+v", got)
	}
}

func TestVec3NormalizeHandlesZeroLength(t *testing.T) {
	got := Vec3{}.Normalize()
	if got != Zero {
		t.Fatalf("expected zero vector for degenerate normalize, got %+v", got)
	}
	unit := Vec3{X: 3, Y: 4}.Normalize()
	if math.Abs(unit.Length()-1) > 1e-9 {
		t.Fatalf("expected unit length, got %f", unit.Length())
	}
}

func TestClampMagnitudeLeavesShortVectorsAlone(t *testing.T) {
	v := Vec3{X: 1}
	if got := ClampMagnitude(v, 5); got != v {
		t.Fatalf("expected unchanged vector, got %+v", got)
	}
}

func TestClampMagnitudeScalesLongVectors(t *testing.T) {
	v := Vec3{X: 10}
	got := ClampMagnitude(v, 2)
	//1.- Result should point the same direction with length exactly 2.
	if math.Abs(got.Length()-2) > 1e-9 {
		t.Fatalf("expected length 2, got %f", got.Length())
	}
	if got.X <= 0 {
		t.Fatalf("expected direction preserved, got %+v", got)
	}
}

func TestClampMagnitudeIgnoresNonPositiveLimit(t *testing.T) {
	v := Vec3{X: 10}
	if got := ClampMagnitude(v, 0); got != v {
		t.Fatalf("expected guard disabled for non-positive limit, got %+v", got)
	}
}

func TestProjectToXZDropsHeight(t *testing.T) {
	got := ProjectToXZ(Vec3{X: 1, Y: 99, Z: 2})
	if got.Y != 0 || got.X != 1 || got.Z != 2 {
		t.Fatalf("expected Y dropped, got %+v", got)
	}
}

func TestLerpAtEndpoints(t *testing.T) {
	a := Vec3{X: 0}
	b := Vec3{X: 10}
	if got := Lerp(a, b, 0); got != a {
		t.Fatalf("expected a at t=0, got %+v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Fatalf("expected b at t=1, got %+v", got)
	}
	if got := Lerp(a, b, 0.5); got.X != 5 {
		t.Fatalf("expected midpoint, got %+v", got)
	}
}
