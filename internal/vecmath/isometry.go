package vecmath

// Isometry is a rigid transform: a rotation followed by a translation, with
// no scale component. Chassis pose, wheel mounts, and camera placement are
// all expressed as an Isometry rather than a 4x4 matrix, since nothing in
// the simulation ever needs shear or non-uniform scale.
type Isometry struct {
	Translation Vec3
	Rotation    Quat
}

// IsometryIdentity places the origin with no rotation.
var IsometryIdentity = Isometry{Rotation: QuatIdentity}

// NewIsometry builds an isometry from a translation and rotation.
func NewIsometry(translation Vec3, rotation Quat) Isometry {
	return Isometry{Translation: translation, Rotation: rotation.Normalize()}
}

// TransformPoint maps a point from local (body) space into world space.
func (iso Isometry) TransformPoint(p Vec3) Vec3 {
	return iso.Rotation.Rotate(p).Add(iso.Translation)
}

// TransformDirection maps a direction from local space into world space
// without applying the translation.
func (iso Isometry) TransformDirection(d Vec3) Vec3 {
	return iso.Rotation.Rotate(d)
}

// InverseTransformPoint maps a world-space point into local space, the
// inverse of TransformPoint.
func (iso Isometry) InverseTransformPoint(p Vec3) Vec3 {
	return iso.Rotation.Conjugate().Rotate(p.Sub(iso.Translation))
}

// Compose returns the isometry equivalent to applying other first, then iso.
func (iso Isometry) Compose(other Isometry) Isometry {
	return Isometry{
		Translation: iso.TransformPoint(other.Translation),
		Rotation:    iso.Rotation.Mul(other.Rotation).Normalize(),
	}
}

// Inverse returns the isometry that undoes iso.
func (iso Isometry) Inverse() Isometry {
	inv := iso.Rotation.Conjugate()
	return Isometry{
		Translation: inv.Rotate(iso.Translation.Neg()),
		Rotation:    inv,
	}
}
