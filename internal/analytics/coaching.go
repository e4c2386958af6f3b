package analytics

import (
	"context"

	"github.com/meltforce/gigofit/internal/models"
)

// ComparisonCategory classifies a finished session against the previous one.
type ComparisonCategory string

const (
	CategoryLegendaryStart ComparisonCategory = "legendary_start"
	CategoryOutdone        ComparisonCategory = "outdone"
	CategoryConsistent     ComparisonCategory = "consistent"
	CategoryEncouragement  ComparisonCategory = "encouragement"
)

// CoachingComparison is the feedback shown on the workout-complete card.
type CoachingComparison struct {
	Category       ComparisonCategory `json:"category"`
	Affirmation    string             `json:"affirmation"`
	PreviousVolume *float64           `json:"previous_volume"`
	IsOutdone      bool               `json:"is_outdone"`
}

const (
	affirmationLegendary     = "Legendary start. The mountain just met you. 🏔️"
	affirmationOutdone       = "You outdid yourself! 🏔️"
	affirmationConsistent    = "Great job, you are staying consistent! 🔥"
	affirmationEncouragement = "Solid effort. Every rep counts—let's push harder next time! 💪"
	affirmationLowVibeBonus  = " Elite discipline today."
)

// CoachingComparison compares the finished session's volume against the most
// recent other completed session. With no prior session the result is a fixed
// legendary_start. Above 105% of the previous volume the session is outdone;
// at or above 90% it is consistent; below that, encouragement.
//
// A low vibe that still held the 90% threshold appends the elite-discipline
// clause. That condition also holds for outdone sessions, so the clause can
// stack on the outdone affirmation.
func (e *Engine) CoachingComparison(ctx context.Context, currentVolume float64, vibe models.Vibe) (CoachingComparison, error) {
	previous, err := e.db.PreviousSessionVolume(ctx)
	if err != nil {
		return CoachingComparison{}, err
	}

	if previous == nil {
		return CoachingComparison{
			Category:       CategoryLegendaryStart,
			Affirmation:    affirmationLegendary,
			PreviousVolume: nil,
			IsOutdone:      false,
		}, nil
	}

	previousVolume := *previous
	outdone := currentVolume > previousVolume*1.05

	var category ComparisonCategory
	var affirmation string
	switch {
	case outdone:
		category = CategoryOutdone
		affirmation = affirmationOutdone
	case currentVolume >= previousVolume*0.9:
		category = CategoryConsistent
		affirmation = affirmationConsistent
	default:
		category = CategoryEncouragement
		affirmation = affirmationEncouragement
	}

	if vibe == models.VibeLow && currentVolume >= previousVolume*0.9 {
		affirmation += affirmationLowVibeBonus
	}

	return CoachingComparison{
		Category:       category,
		Affirmation:    affirmation,
		PreviousVolume: &previousVolume,
		IsOutdone:      outdone,
	}, nil
}
