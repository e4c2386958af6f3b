// Package format holds the small naming and display-formatting helpers shared
// by the repository and the presentation surfaces.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gigofit/internal/models"
)

// BuildDefaultWorkoutName derives the fallback display name for a session.
// Non-integer counts are floored and non-positive counts clamp to 1.
func BuildDefaultWorkoutName(workoutNumber float64) string {
	n := int(math.Floor(workoutNumber))
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("Workout - %d", n)
}

// FormatDuration renders elapsed seconds as hh:mm:ss, clamping negatives to 0.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// FormatVibeLabel returns the user-facing label for a vibe level.
func FormatVibeLabel(v models.Vibe) string {
	switch v {
	case models.VibeLow:
		return "Low Energy"
	case models.VibeCrushing:
		return "Crushing It"
	default:
		return "Normal"
	}
}

// FormatWeekLabel turns a "YYYY-WW" bucket key (strftime %Y-%W, Monday-first
// weeks with week 00 at the start of the year) into a short "Mon YYYY" axis
// label. Unparseable keys are returned unchanged.
func FormatWeekLabel(weekKey string) string {
	yearText, weekText, ok := strings.Cut(weekKey, "-")
	if !ok {
		return weekKey
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return weekKey
	}
	week, err := strconv.Atoi(weekText)
	if err != nil {
		return weekKey
	}
	approx := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, week*7)
	return approx.Format("Jan 2006")
}

// FormatMonthLabel turns a "YYYY-MM" bucket key into a short "Mon YYYY" axis
// label. Unparseable keys are returned unchanged.
func FormatMonthLabel(monthKey string) string {
	yearText, monthText, ok := strings.Cut(monthKey, "-")
	if !ok {
		return monthKey
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return monthKey
	}
	month, err := strconv.Atoi(monthText)
	if err != nil || month < 1 || month > 12 {
		return monthKey
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// DayPartLabel maps a session start time to its day-part theme label used by
// the history surface.
func DayPartLabel(startTimeMs int64) string {
	hour := time.UnixMilli(startTimeMs).Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "Morning Lift"
	case hour >= 12 && hour < 17:
		return "Sunny Session"
	case hour >= 17 && hour < 21:
		return "Relaxed Grind"
	default:
		return "Late Night Ascent"
	}
}
