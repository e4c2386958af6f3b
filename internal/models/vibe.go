package models

import (
	"encoding/json"
	"fmt"
)

// Vibe is the user's self-reported energy level for a session. It is stored
// as a small integer and exposed to callers as its string form.
type Vibe int

const (
	VibeLow      Vibe = 0
	VibeNormal   Vibe = 1
	VibeCrushing Vibe = 2
)

var vibeNames = map[Vibe]string{
	VibeLow:      "low",
	VibeNormal:   "normal",
	VibeCrushing: "crushing",
}

var vibeValues = map[string]Vibe{
	"low":      VibeLow,
	"normal":   VibeNormal,
	"crushing": VibeCrushing,
}

func (v Vibe) String() string {
	if name, ok := vibeNames[v]; ok {
		return name
	}
	return "normal"
}

// Valid reports whether v is one of the three known vibe levels.
func (v Vibe) Valid() bool {
	_, ok := vibeNames[v]
	return ok
}

// ParseVibe converts the string enum form back to its integer encoding.
func ParseVibe(s string) (Vibe, error) {
	if v, ok := vibeValues[s]; ok {
		return v, nil
	}
	return VibeNormal, fmt.Errorf("unknown vibe %q", s)
}

func (v Vibe) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Vibe) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVibe(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// VibeMultipliers are the suggested set/rep scaling factors for a vibe level.
type VibeMultipliers struct {
	Sets float64 `json:"sets"`
	Reps float64 `json:"reps"`
}

// VibeMultiplierTable maps each vibe to its workout-suggestion multipliers.
var VibeMultiplierTable = map[Vibe]VibeMultipliers{
	VibeLow:      {Sets: 0.75, Reps: 0.8},
	VibeNormal:   {Sets: 1, Reps: 1},
	VibeCrushing: {Sets: 1.25, Reps: 1.15},
}

// VibeLevel pairs a vibe with its suggested workout multipliers.
type VibeLevel struct {
	Vibe        Vibe            `json:"vibe"`
	Multipliers VibeMultipliers `json:"multipliers"`
}

// VibeLevels lists the vibe scale in ascending order, for pickers and
// suggestion surfaces.
func VibeLevels() []VibeLevel {
	scale := []Vibe{VibeLow, VibeNormal, VibeCrushing}
	out := make([]VibeLevel, len(scale))
	for i, v := range scale {
		out[i] = VibeLevel{Vibe: v, Multipliers: VibeMultiplierTable[v]}
	}
	return out
}
