package telemetry

import (
	"encoding/json"
	"math"

	"drivesim/internal/snapshot"
	"drivesim/internal/vecmath"
)

// fieldTier orders the RenderSnapshot fields from most to least essential.
// Lower-tier fields are dropped first when a frame would exceed the byte
// budget; the chassis transform is never dropped.
type fieldTier int

const (
	tierChassis fieldTier = iota
	tierWheels
	tierSkidMarks
	tierDebugText
)

// frameWire is the JSON shape pushed to the debug client. Fields are
// `omitempty` so a dropped tier simply disappears from the payload rather
// than being sent as a zero value.
type frameWire struct {
	SequenceID     uint64      `json:"seq"`
	CarTransform   wireIso     `json:"car"`
	WheelTransform []wireIso   `json:"wheels,omitempty"`
	SkidPoints     []*wireVec3 `json:"skid_points,omitempty"`
	Debug          string      `json:"debug,omitempty"`
}

type wireVec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type wireIso struct {
	Position wireVec3 `json:"position"`
	Forward  wireVec3 `json:"forward"`
}

// BudgetPlanner trims a RenderSnapshot to fit within a byte budget, dropping
// whole tiers (lowest priority first) rather than truncating a single
// field's encoding.
type BudgetPlanner struct {
	maxBytes int
}

// BudgetResult summarises the outcome of planning a single frame.
type BudgetResult struct {
	Payload   []byte
	BytesUsed int
	Dropped   []string
	Exhausted bool
}

// NewBudgetPlanner constructs a planner honouring the given byte budget. A
// non-positive maxBytes disables budgeting entirely.
func NewBudgetPlanner(maxBytes int) *BudgetPlanner {
	if maxBytes <= 0 {
		maxBytes = math.MaxInt32
	}
	return &BudgetPlanner{maxBytes: maxBytes}
}

// Plan encodes snap as JSON, dropping the debug string, then skid marks,
// then wheels, until the payload fits within the configured byte budget.
// The chassis transform is always kept.
func (p *BudgetPlanner) Plan(seq uint64, snap snapshot.RenderSnapshot) BudgetResult {
	if p == nil {
		p = NewBudgetPlanner(0)
	}

	wire := frameWire{
		SequenceID:   seq,
		CarTransform: toWireIso(snap.CarTransform),
		Debug:        snap.DebugString,
	}
	for _, w := range snap.WheelTransforms {
		iso := toWireIso(w)
		wire.WheelTransform = append(wire.WheelTransform, iso)
	}
	for _, point := range snap.SkidContactPoints {
		if point == nil {
			wire.SkidPoints = append(wire.SkidPoints, nil)
			continue
		}
		wire.SkidPoints = append(wire.SkidPoints, &wireVec3{X: point.X, Y: point.Y, Z: point.Z})
	}

	var dropped []string
	for {
		payload, err := json.Marshal(wire)
		if err != nil || len(payload) <= p.maxBytes {
			return BudgetResult{Payload: payload, BytesUsed: len(payload), Dropped: dropped, Exhausted: len(dropped) > 0}
		}
		switch {
		case wire.Debug != "":
			wire.Debug = ""
			dropped = append(dropped, "debug")
		case wire.SkidPoints != nil:
			wire.SkidPoints = nil
			dropped = append(dropped, "skid_points")
		case wire.WheelTransform != nil:
			wire.WheelTransform = nil
			dropped = append(dropped, "wheels")
		default:
			// Only the chassis transform remains; send it regardless of
			// budget rather than drop the one essential field.
			payload, _ := json.Marshal(wire)
			return BudgetResult{Payload: payload, BytesUsed: len(payload), Dropped: dropped, Exhausted: true}
		}
	}
}

func toWireIso(iso vecmath.Isometry) wireIso {
	pos := iso.Translation
	fwd := iso.Rotation.Forward()
	return wireIso{
		Position: wireVec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Forward:  wireVec3{X: fwd.X, Y: fwd.Y, Z: fwd.Z},
	}
}
