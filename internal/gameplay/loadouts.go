package gameplay

import (
	"encoding/json"
	"sync"

	_ "embed"
)

// HandlingModifiers scale a subset of the base TunableSet, the way the
// teacher's PassiveModifiers scaled a vehicle's base stats per loadout, but
// aimed at handling feel (grip/suspension/drag) instead of combat stats.
type HandlingModifiers struct {
	GripMultiplier       float64 `json:"gripMultiplier"`
	SuspensionMultiplier float64 `json:"suspensionMultiplier"`
	DragMultiplier       float64 `json:"dragMultiplier"`
}

// HandlingProfile is a selectable car handling preset.
type HandlingProfile struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	Selectable  bool              `json:"selectable"`
	Modifiers   HandlingModifiers `json:"modifiers"`
}

type handlingProfileFile struct {
	Profiles []HandlingProfile `json:"profiles"`
}

//go:embed handling_profiles.json
var handlingProfilePayload []byte

var (
	profilesOnce sync.Once
	profilesData []HandlingProfile
	profilesErr  error
)

// HandlingProfiles returns the immutable catalogue of handling presets.
func HandlingProfiles() []HandlingProfile {
	profilesOnce.Do(func() {
		//1.- Parse the embedded JSON catalogue in a thread-safe manner.
		var decoded handlingProfileFile
		profilesErr = json.Unmarshal(handlingProfilePayload, &decoded)
		if profilesErr == nil {
			profilesData = decoded.Profiles
		}
	})
	//2.- Surface configuration errors eagerly to avoid divergent tuning tables.
	if profilesErr != nil {
		panic(profilesErr)
	}
	//3.- Return a defensive copy so callers cannot mutate the cached slice.
	clones := make([]HandlingProfile, len(profilesData))
	copy(clones, profilesData)
	return clones
}

// DeriveTunablesWithModifiers applies handling modifiers to a base
// TunableSet, guarding non-positive multipliers the same way the teacher's
// DeriveStatsWithModifiers guarded non-positive scalars.
func DeriveTunablesWithModifiers(base TunableSet, modifiers HandlingModifiers) TunableSet {
	adjusted := base

	grip := modifiers.GripMultiplier
	if grip <= 0 {
		grip = 1
	}
	adjusted.WheelGripCoefficient = base.WheelGripCoefficient * grip
	adjusted.MaxFrictionImpulse = base.MaxFrictionImpulse * grip

	suspension := modifiers.SuspensionMultiplier
	if suspension <= 0 {
		suspension = 1
	}
	adjusted.SuspensionStiffness = base.SuspensionStiffness * suspension
	adjusted.SuspensionDamper = base.SuspensionDamper * suspension

	drag := modifiers.DragMultiplier
	if drag <= 0 {
		drag = 1
	}
	adjusted.DragCoefficient = base.DragCoefficient * drag
	adjusted.DownforceCoefficient = base.DownforceCoefficient * drag

	return adjusted
}

// TunablesForProfile resolves the tunables for a named handling profile,
// falling back to the unmodified default tunables for an unknown ID.
func TunablesForProfile(profileID string) TunableSet {
	base := DefaultTunables()
	for _, profile := range HandlingProfiles() {
		if profile.ID == profileID {
			return DeriveTunablesWithModifiers(base, profile.Modifiers)
		}
	}
	return base
}

// DefaultHandlingProfileID returns the first selectable profile identifier.
func DefaultHandlingProfileID() string {
	for _, profile := range HandlingProfiles() {
		if profile.Selectable {
			return profile.ID
		}
	}
	return ""
}
