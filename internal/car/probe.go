package car

import (
	"drivesim/internal/gameplay"
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

// WheelHit is the per-wheel ray-cast result recorded each frame: the probe
// ray itself plus an optional hit. Grounded is false when the ray found no
// collider within range, in which case Distance/Point/Normal are zero
// values and must not be used.
type WheelHit struct {
	RayOrigin vecmath.Vec3
	RayDir    vecmath.Vec3
	Grounded  bool
	Distance  float64
	Point     vecmath.Vec3
	Normal    vecmath.Vec3
}

// offsetByIndex returns the body-local wheel offset for index in the fixed
// FrontLeft/FrontRight/RearLeft/RearRight order.
func offsetByIndex(offsets gameplay.WheelOffsets, index WheelIndex) vecmath.Vec3 {
	switch index {
	case FrontLeft:
		return gameplay.AsVec3(offsets.FrontLeft)
	case FrontRight:
		return gameplay.AsVec3(offsets.FrontRight)
	case RearLeft:
		return gameplay.AsVec3(offsets.RearLeft)
	default:
		return gameplay.AsVec3(offsets.RearRight)
	}
}

// ProbeWheels casts all four wheel rays from chassisPose in the direction
// opposite the chassis up-axis (not world -Y, so a rolled-over car still
// probes "downward relative to itself"), querying pipeline with a max
// distance of suspension_max + wheel_radius. It returns one WheelHit per
// wheel plus the grounded count.
func ProbeWheels(pipeline *oracle.QueryPipeline, chassisPose vecmath.Isometry, tunables gameplay.TunableSet) ([4]WheelHit, int) {
	maxDistance := tunables.SuspensionMaxTravelM + tunables.WheelRadiusM
	down := chassisPose.Rotation.Up().Neg()

	var hits [4]WheelHit
	grounded := 0
	for i := WheelIndex(0); i < 4; i++ {
		origin := chassisPose.TransformPoint(offsetByIndex(tunables.WheelOffsets, i))
		found, result := pipeline.Raycast(origin, down, maxDistance)
		hit := WheelHit{RayOrigin: origin, RayDir: down}
		if found {
			hit.Grounded = true
			hit.Distance = result.Distance
			hit.Point = result.Point
			hit.Normal = result.Normal
			grounded++
		}
		hits[i] = hit
	}
	return hits, grounded
}
