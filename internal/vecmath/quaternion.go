package vecmath

import "math"

// Quat is a unit quaternion representing a 3D rotation, stored value-style
// like Vec3 rather than the mutate-in-place style some linear algebra
// libraries in the retrieval pack use (e.g. gazed-vu's math/lin.Q); this
// keeps the whole package allocation-free and consistent with the rest of
// the simulation's immutable-value idiom.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{W: 1}

// FromAxisAngle builds a unit quaternion rotating by angleRad radians about
// axis (which need not be pre-normalized).
func FromAxisAngle(axis Vec3, angleRad float64) Quat {
	axis = axis.Normalize()
	half := angleRad / 2
	s := math.Sin(half)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(half)}
}

// Normalize returns q scaled to unit length, or the identity if q is
// (numerically) the zero quaternion.
func (q Quat) Normalize() Quat {
	lenSq := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if lenSq < 1e-12 {
		return QuatIdentity
	}
	inv := 1 / math.Sqrt(lenSq)
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul composes two rotations: (q.Mul(r)) applied to a vector equals applying
// r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the inverse rotation for a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to v via the sandwich product q*v*q^-1.
func (q Quat) Rotate(v Vec3) Vec3 {
	//1.- Expand the quaternion-vector sandwich product directly instead of
	// building an intermediate pure quaternion, avoiding an allocation and a
	// redundant multiply per wheel per frame.
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Forward returns the +Z body axis rotated into world space, the convention
// the chassis and wheel geometry are authored against.
func (q Quat) Forward() Vec3 { return q.Rotate(Vec3{Z: 1}).Normalize() }

// Up returns the +Y body axis rotated into world space.
func (q Quat) Up() Vec3 { return q.Rotate(Vec3{Y: 1}).Normalize() }

// YawDeg extracts an approximate heading in degrees about the world Y axis,
// used only for camera/debug display, never for integration.
func (q Quat) YawDeg() float64 {
	forward := q.Forward()
	return math.Atan2(forward.X, forward.Z) * 180 / math.Pi
}
