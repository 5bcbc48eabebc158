// Package input translates raw host key events into the five latched
// booleans the Car Step Orchestrator polls once per frame. Unlike the
// teacher's input.Gate/Validator (which defended a multiplayer network
// boundary by rate-limiting and sequencing untrusted client packets), this
// state is driven directly by the local host's own keyboard — there is no
// untrusted remote sender to validate, so no timing or sequencing logic is
// carried over.
package input

// State holds the five drive/steer key flags. Zero value is "nothing held".
type State struct {
	WPressed     bool
	APressed     bool
	SPressed     bool
	DPressed     bool
	ShiftPressed bool
}

// Key identifies one of the five tracked physical keys; unrecognized codes
// passed to HandleKey are ignored.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyShift
)

// HandleKey updates the latched state for key. It is idempotent by
// (key, pressed): handling the same press or release twice in a row leaves
// the state unchanged rather than toggling it.
func (s *State) HandleKey(key Key, pressed bool) {
	switch key {
	case KeyW:
		s.WPressed = pressed
	case KeyA:
		s.APressed = pressed
	case KeyS:
		s.SPressed = pressed
	case KeyD:
		s.DPressed = pressed
	case KeyShift:
		s.ShiftPressed = pressed
	}
}
