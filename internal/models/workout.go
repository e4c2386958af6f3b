package models

// MuscleGroup identifies the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
	MuscleGlutes    MuscleGroup = "glutes"
	MuscleForearms  MuscleGroup = "forearms"
	MuscleFullBody  MuscleGroup = "full_body"
)

// ExerciseCategory classifies how an exercise is performed.
type ExerciseCategory string

const (
	CategoryCompound   ExerciseCategory = "compound"
	CategoryIsolation  ExerciseCategory = "isolation"
	CategoryBodyweight ExerciseCategory = "bodyweight"
	CategoryCardio     ExerciseCategory = "cardio"
)

// Exercise is an immutable catalog entry, created once at first launch.
type Exercise struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	MuscleGroup MuscleGroup      `json:"muscle_group"`
	Category    ExerciseCategory `json:"category"`
}

// Session is a single workout. EndTime is nil while the session is active;
// at most one session is active at any time. Timestamps are ms since epoch.
type Session struct {
	ID          int64   `json:"id"`
	StartTime   int64   `json:"start_time"`
	EndTime     *int64  `json:"end_time"`
	Vibe        Vibe    `json:"vibe"`
	ElapsedTime int64   `json:"elapsed_time"`
	IsPaused    bool    `json:"is_paused"`
	DisplayName *string `json:"display_name"`
}

// Completed reports whether the session has been finalized.
func (s *Session) Completed() bool {
	return s.EndTime != nil
}

// WorkoutSet is one logged (weight, reps) pair tied to a session and an
// exercise. CreatedAt (ms epoch) is the within-session ordering key.
type WorkoutSet struct {
	ID         int64   `json:"id"`
	SessionID  int64   `json:"session_id"`
	ExerciseID int64   `json:"exercise_id"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	CreatedAt  int64   `json:"created_at"`
}

// Volume returns weight x reps for the set.
func (s WorkoutSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// SetDetail is a set joined with its exercise name for the live workout view.
type SetDetail struct {
	WorkoutSet
	ExerciseName string `json:"exercise_name"`
}

// GhostValues are the last-used weight/reps for an exercise, used to pre-fill
// the set input form.
type GhostValues struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// ExerciseSummary aggregates one exercise's sets within a session summary.
type ExerciseSummary struct {
	ExerciseName string  `json:"exercise_name"`
	SetCount     int     `json:"set_count"`
	TotalVolume  float64 `json:"total_volume"`
}

// SessionSummary is the full completion-card payload for one session.
type SessionSummary struct {
	Session         Session           `json:"session"`
	TotalVolume     float64           `json:"total_volume"`
	TotalSets       int               `json:"total_sets"`
	DurationMinutes int               `json:"duration_minutes"`
	Exercises       []ExerciseSummary `json:"exercises"`
}

// HistorySession is a completed session annotated with its aggregates for
// the history list and month calendar.
type HistorySession struct {
	ID              int64   `json:"id"`
	StartTime       int64   `json:"start_time"`
	EndTime         *int64  `json:"end_time"`
	Vibe            Vibe    `json:"vibe"`
	DisplayName     *string `json:"display_name"`
	TotalVolume     float64 `json:"total_volume"`
	TotalSets       int     `json:"total_sets"`
	DurationMinutes int     `json:"duration_minutes"`
}
