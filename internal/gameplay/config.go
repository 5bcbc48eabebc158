// Package gameplay loads the car's tunable physics parameters and exposes
// handling presets derived from them, the way the teacher's gameplay
// package loaded a vehicle's stat block and loadout catalogue from embedded
// JSON behind a sync.Once.
package gameplay

import (
	"encoding/json"
	"sync"

	_ "embed"

	"drivesim/internal/vecmath"
)

// WheelOffsets are the four fixed body-local points rays originate from.
// Exact coordinates are part of the car's shape, not invented values.
type WheelOffsets struct {
	FrontLeft  [3]float64 `json:"frontLeft"`
	FrontRight [3]float64 `json:"frontRight"`
	RearLeft   [3]float64 `json:"rearLeft"`
	RearRight  [3]float64 `json:"rearRight"`
}

// AsVec3 converts an offset array into the vecmath value type, giving each
// call site a value it can feed straight into an Isometry transform.
func AsVec3(offset [3]float64) vecmath.Vec3 {
	return vecmath.Vec3{X: offset[0], Y: offset[1], Z: offset[2]}
}

// TunableSet captures every named world/car constant in the car model: all
// tunables are named fields here, never magic literals scattered through
// the orchestrator, suspension, or tire code.
type TunableSet struct {
	GravityMps2           float64 `json:"gravityMps2"`
	ChassisMassKg         float64 `json:"chassisMassKg"`
	ChassisAngularInertia float64 `json:"chassisAngularInertia"`
	WheelRadiusM          float64 `json:"wheelRadiusM"`

	SuspensionMaxTravelM float64 `json:"suspensionMaxTravelM"`
	SuspensionStiffness  float64 `json:"suspensionStiffness"`
	SuspensionDamper     float64 `json:"suspensionDamper"`

	ThrottleResponse float64 `json:"throttleResponse"`
	AccelerationMps2 float64 `json:"accelerationMps2"`

	SteeringRadiusSlowDeg          float64 `json:"steeringRadiusSlowDeg"`
	SteeringRadiusFastDeg          float64 `json:"steeringRadiusFastDeg"`
	SteeringSpeedThreshold         float64 `json:"steeringSpeedThreshold"`
	SteeringResponseSlowDegPerUnit float64 `json:"steeringResponseSlowDegPerUnit"`
	SteeringResponseFastDegPerUnit float64 `json:"steeringResponseFastDegPerUnit"`
	TurnAngleDeadBandRad           float64 `json:"turnAngleDeadBandRad"`

	MaxFrictionImpulse     float64 `json:"maxFrictionImpulse"`
	WheelGripCoefficient   float64 `json:"wheelGripCoefficient"`
	SlipClampScale         float64 `json:"slipClampScale"`
	DriftLongitudinalBoost float64 `json:"driftLongitudinalBoost"`

	DragCoefficient      float64 `json:"dragCoefficient"`
	DownforceCoefficient float64 `json:"downforceCoefficient"`

	SkidMinSpeedMps float64 `json:"skidMinSpeedMps"`

	WheelOffsets WheelOffsets  `json:"wheelOffsets"`
	HullUpper    [8][3]float64 `json:"hullUpper"`
	HullLower    [12][3]float64 `json:"hullLower"`
}

//go:embed tunables.json
var tunablesPayload []byte

var (
	tunablesOnce sync.Once
	tunablesData TunableSet
	tunablesErr  error
)

// DefaultTunables exposes the cached car tuning parameters decoded once from
// the embedded JSON document.
func DefaultTunables() TunableSet {
	tunablesOnce.Do(func() {
		//1.- Parse the embedded JSON payload exactly once in a threadsafe manner.
		tunablesErr = json.Unmarshal(tunablesPayload, &tunablesData)
	})
	//2.- Panic immediately when the configuration cannot be decoded to avoid silent divergence.
	if tunablesErr != nil {
		panic(tunablesErr)
	}
	//3.- Return a copy so callers cannot mutate the cached struct.
	return tunablesData
}

// LoadTunablesFromJSON decodes an override document. It starts from
// DefaultTunables so a partial override document still yields sane values
// for fields it omits.
func LoadTunablesFromJSON(payload []byte) (TunableSet, error) {
	set := DefaultTunables()
	if err := json.Unmarshal(payload, &set); err != nil {
		return TunableSet{}, err
	}
	return set, nil
}

// ChassisColliderRadius returns the radius of the smallest sphere, centered
// on the chassis origin, enclosing every hull vertex. The oracle uses this
// as the chassis's body collider for narrow-phase contact against static
// world geometry (walls, ramps, anything not directly under a wheel ray),
// the one consumer the hull vertex tables exist to feed.
func (t TunableSet) ChassisColliderRadius() float64 {
	radius := 0.0
	for _, p := range t.HullUpper {
		if l := AsVec3(p).Length(); l > radius {
			radius = l
		}
	}
	for _, p := range t.HullLower {
		if l := AsVec3(p).Length(); l > radius {
			radius = l
		}
	}
	return radius
}
