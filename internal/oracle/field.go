package oracle

import (
	"math"

	"drivesim/internal/vecmath"
)

// SignedDistanceField exposes the sampling contract for collision and
// ray-cast queries against static world geometry. This is the narrow-phase
// half of the minimal conforming Physics Oracle: broad phase is a linear
// scan over a small list of these (ground, decor, kill-plane), which is
// legitimate for a single small arena rather than an open world.
type SignedDistanceField interface {
	Sample(point vecmath.Vec3) float64
}

// SampleFunc adapts a plain function into a SignedDistanceField, useful for
// one-off shapes in tests without declaring a named type.
type SampleFunc func(vecmath.Vec3) float64

// Sample invokes the wrapped function.
func (s SampleFunc) Sample(point vecmath.Vec3) float64 { return s(point) }

// PlaneField is an infinite plane described by a point and unit normal; used
// for the ground.
type PlaneField struct {
	origin vecmath.Vec3
	normal vecmath.Vec3
}

// NewPlaneField normalizes the normal and stores the plane representation.
func NewPlaneField(point, normal vecmath.Vec3) PlaneField {
	return PlaneField{origin: point, normal: normal.Normalize()}
}

// Sample returns the signed distance from the plane to point.
func (p PlaneField) Sample(point vecmath.Vec3) float64 {
	return point.Sub(p.origin).Dot(p.normal)
}

// BoxField is an axis-aligned box used for decor and ramp colliders.
// HalfExtents must be positive on every axis.
type BoxField struct {
	Center      vecmath.Vec3
	HalfExtents vecmath.Vec3
}

// Sample computes the exact signed distance to an axis-aligned box, positive
// outside and negative when point is inside.
func (b BoxField) Sample(point vecmath.Vec3) float64 {
	//1.- Standard box SDF: clamp each axis offset to the box extents, the
	// leftover vector magnitude is the exterior distance.
	d := point.Sub(b.Center)
	qx := math.Abs(d.X) - b.HalfExtents.X
	qy := math.Abs(d.Y) - b.HalfExtents.Y
	qz := math.Abs(d.Z) - b.HalfExtents.Z

	outside := vecmath.Vec3{X: math.Max(qx, 0), Y: math.Max(qy, 0), Z: math.Max(qz, 0)}
	inside := math.Min(math.Max(qx, math.Max(qy, qz)), 0)
	return outside.Length() + inside
}

// HeightField models the flat ocean kill-plane: a horizontal plane at a
// fixed Y, present only to give the camera and wheel probe something
// analytic to sample under the playable map.
type HeightField struct {
	Height float64
}

// Sample returns the vertical distance above the flat height.
func (h HeightField) Sample(point vecmath.Vec3) float64 {
	return point.Y - h.Height
}

// Union combines several fields into one, taking the minimum (closest)
// distance, the standard SDF combinator for "either of these colliders".
type Union []SignedDistanceField

// Sample returns the smallest signed distance across the unioned fields, or
// +Inf for an empty union.
func (u Union) Sample(point vecmath.Vec3) float64 {
	best := math.Inf(1)
	for _, field := range u {
		if d := field.Sample(point); d < best {
			best = d
		}
	}
	return best
}

// RayHit describes a successful sphere-marched ray intersection.
type RayHit struct {
	Distance float64
	Point    vecmath.Vec3
	Normal   vecmath.Vec3
}

const (
	defaultMaxSteps = 128
	defaultEpsilon  = 1e-3
)

// Raycast sphere-marches direction from origin against field until a hit
// within epsilon of the surface, the ray exceeds maxDistance, or maxSteps is
// exhausted. direction need not be pre-normalized.
func Raycast(field SignedDistanceField, origin, direction vecmath.Vec3, maxDistance float64) (bool, RayHit) {
	dir := direction.Normalize()
	if dir == vecmath.Zero {
		return false, RayHit{}
	}
	distance := 0.0
	current := origin
	for step := 0; step < defaultMaxSteps; step++ {
		sample := field.Sample(current)
		if sample < defaultEpsilon {
			return true, RayHit{
				Distance: distance,
				Point:    current,
				Normal:   estimateNormal(field, current),
			}
		}
		distance += sample
		if distance > maxDistance {
			break
		}
		current = origin.Add(dir.Scale(distance))
	}
	return false, RayHit{}
}

// estimateNormal computes a finite-difference gradient of the field at
// point, used as the surface normal at a ray hit.
func estimateNormal(field SignedDistanceField, point vecmath.Vec3) vecmath.Vec3 {
	const h = 1e-4
	dx := field.Sample(point.Add(vecmath.Vec3{X: h})) - field.Sample(point.Sub(vecmath.Vec3{X: h}))
	dy := field.Sample(point.Add(vecmath.Vec3{Y: h})) - field.Sample(point.Sub(vecmath.Vec3{Y: h}))
	dz := field.Sample(point.Add(vecmath.Vec3{Z: h})) - field.Sample(point.Sub(vecmath.Vec3{Z: h}))
	return vecmath.Vec3{X: dx, Y: dy, Z: dz}.Normalize()
}

// SphereIntersection reports whether a bounding sphere penetrates field and
// the signed clearance (negative means penetrating).
func SphereIntersection(field SignedDistanceField, center vecmath.Vec3, radius float64) (bool, float64) {
	separation := field.Sample(center) - radius
	return separation <= 0, separation
}
