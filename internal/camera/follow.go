// Package camera implements the occlusion-aware, velocity-biased follow
// camera that trails the chassis. It is the one other ray-cast consumer in
// the system besides the wheel probe, and deliberately reuses the same
// oracle.Raycast/QueryPipeline path rather than a separate query surface.
package camera

import (
	"drivesim/internal/oracle"
	"drivesim/internal/vecmath"
)

const (
	// eyeHeightM is the vertical offset from the chassis to the camera's
	// desired anchor point before the back-cast is applied.
	eyeHeightM = 5.0
	// targetHeightM is the vertical offset from the chassis to the look-at
	// target.
	targetHeightM = 2.0
	// maxDistanceM is the default follow distance when nothing occludes it.
	maxDistanceM = 6.25

	eyeLerpRate    = 0.06
	targetLerpRate = 0.30
	upLerpRate     = 0.30

	// stationaryLinvelThreshold is the XZ-plane speed below which the
	// camera still uses chassis orientation rather than velocity direction,
	// avoiding a jittery "facing" while nearly stopped.
	stationaryLinvelThreshold = 0.5
)

// Camera is the mutable framing state the follow controller smooths toward
// a target each frame.
type Camera struct {
	Eye    vecmath.Vec3
	Target vecmath.Vec3
	Up     vecmath.Vec3
	Aspect float64
	FovY   float64
}

// NewCamera constructs a camera at the given eye/target with +Y up.
func NewCamera(eye, target vecmath.Vec3, aspect, fovY float64) Camera {
	return Camera{Eye: eye, Target: target, Up: vecmath.Up, Aspect: aspect, FovY: fovY}
}

// Update advances the camera one frame given the chassis pose, linear
// velocity, and wheel-grounded count, ray-casting against pipeline to keep
// the eye from clipping through terrain or buildings.
func (c *Camera) Update(pipeline *oracle.QueryPipeline, chassisPose vecmath.Isometry, chassisLinvel vecmath.Vec3, wheelsGrounded int, adjustedDt float64) {
	chassisForward := chassisPose.Rotation.Forward()
	linvelXZ := vecmath.ProjectToXZ(chassisLinvel)

	forward := vecmath.ProjectToXZ(chassisForward)
	if wheelsGrounded <= 1 && linvelXZ.Length() >= stationaryLinvelThreshold {
		//1.- Airborne and moving with purpose: face the flight direction
		// instead of the chassis's (possibly tumbling) orientation.
		forward = linvelXZ
	}
	forward = forward.Normalize()
	if forward == vecmath.Zero {
		forward = vecmath.ProjectToXZ(chassisForward).Normalize()
	}

	targetEye := chassisPose.Translation.Add(vecmath.Vec3{Y: eyeHeightM})
	dist := maxDistanceM
	if pipeline != nil {
		hit, result := pipeline.Raycast(targetEye, forward.Neg(), maxDistanceM)
		if hit && result.Distance < dist {
			dist = result.Distance
		}
	}
	targetEye = targetEye.Sub(forward.Scale(dist))

	desiredTarget := chassisPose.Translation.Add(vecmath.Vec3{Y: targetHeightM})

	c.Eye = vecmath.Lerp(c.Eye, targetEye, eyeLerpRate*adjustedDt)
	c.Target = vecmath.Lerp(c.Target, desiredTarget, targetLerpRate*adjustedDt)
	c.Up = vecmath.Lerp(c.Up, vecmath.Up, upLerpRate*adjustedDt)
}
