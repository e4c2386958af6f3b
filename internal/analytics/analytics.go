// Package analytics derives volume trends, personal records, and coaching
// feedback from the workout store. It is a pure read-side consumer: nothing
// here mutates state.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meltforce/gigofit/internal/storage"
)

// PRType is the metric a personal-record event was scored on.
type PRType string

const (
	PRWeight PRType = "weight"
	PRVolume PRType = "volume"
	PR1RM    PRType = "1rm"
)

// PREvent is one new personal record detected within a session.
type PREvent struct {
	ExerciseID int64   `json:"exercise_id"`
	Type       PRType  `json:"type"`
	Value      float64 `json:"value"`
}

// SessionPREvent tags a PR event with the session that produced it.
type SessionPREvent struct {
	PREvent
	SessionID int64 `json:"session_id"`
}

// Engine answers analytics queries against the repository.
type Engine struct {
	db *storage.DB
}

// New returns an Engine reading from db.
func New(db *storage.DB) *Engine {
	return &Engine{db: db}
}

// WeeklyVolume returns the most recent N week buckets of completed-session
// volume in ascending chronological order. The store fetches newest-first
// with a limit; the reversal here is what gives charts their left-to-right
// chronology, so the ordering must hold exactly.
func (e *Engine) WeeklyVolume(ctx context.Context, weeks int) ([]storage.VolumePoint, error) {
	points, err := e.db.WeeklyVolume(ctx, weeks)
	if err != nil {
		return nil, err
	}
	reverse(points)
	return points, nil
}

// MonthlyVolume is WeeklyVolume over calendar months.
func (e *Engine) MonthlyVolume(ctx context.Context, months int) ([]storage.VolumePoint, error) {
	points, err := e.db.MonthlyVolume(ctx, months)
	if err != nil {
		return nil, err
	}
	reverse(points)
	return points, nil
}

// ExerciseWeeklyMax returns the per-week max weight for one exercise,
// ascending by week.
func (e *Engine) ExerciseWeeklyMax(ctx context.Context, exerciseID int64) ([]storage.WeeklyMaxPoint, error) {
	return e.db.ExerciseWeeklyMax(ctx, exerciseID)
}

// ExerciseWeekly1RM returns the per-week max Epley-estimated 1RM for one
// exercise, ascending by week.
func (e *Engine) ExerciseWeekly1RM(ctx context.Context, exerciseID int64) ([]storage.Weekly1RMPoint, error) {
	return e.db.ExerciseWeekly1RM(ctx, exerciseID)
}

// DetectNewPR scores every set in the session on weight, set volume, and
// estimated 1RM against the exercise's history (completed sessions only,
// this session excluded). A record must strictly exceed history; ties do not
// count. Multiple qualifying sets for one exercise collapse to the single
// best value per metric. Results are ordered by exercise id, then by the
// metric type string.
func (e *Engine) DetectNewPR(ctx context.Context, sessionID int64) ([]PREvent, error) {
	sessionSets, err := e.db.SessionSetMetrics(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session sets: %w", err)
	}
	if len(sessionSets) == 0 {
		return nil, nil
	}

	seen := make(map[int64]bool)
	var exerciseIDs []int64
	for _, s := range sessionSets {
		if !seen[s.ExerciseID] {
			seen[s.ExerciseID] = true
			exerciseIDs = append(exerciseIDs, s.ExerciseID)
		}
	}

	historical, err := e.db.HistoricalMaxes(ctx, exerciseIDs, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading historical maxes: %w", err)
	}
	historyByExercise := make(map[int64]storage.HistoricalMax, len(historical))
	for _, h := range historical {
		historyByExercise[h.ExerciseID] = h
	}

	type prKey struct {
		exerciseID int64
		prType     PRType
	}
	best := make(map[prKey]float64)

	record := func(exerciseID int64, prType PRType, value, historicalMax float64) {
		if value <= historicalMax {
			return
		}
		key := prKey{exerciseID, prType}
		if current, ok := best[key]; !ok || value > current {
			best[key] = value
		}
	}

	for _, s := range sessionSets {
		h := historyByExercise[s.ExerciseID]
		record(s.ExerciseID, PRWeight, s.Weight, nullMax(h.MaxWeight))
		record(s.ExerciseID, PRVolume, s.SetVolume, nullMax(h.MaxVolume))
		record(s.ExerciseID, PR1RM, s.Estimated1RM, nullMax(h.Max1RM))
	}

	events := make([]PREvent, 0, len(best))
	for key, value := range best {
		events = append(events, PREvent{ExerciseID: key.exerciseID, Type: key.prType, Value: value})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].ExerciseID != events[j].ExerciseID {
			return events[i].ExerciseID < events[j].ExerciseID
		}
		return events[i].Type < events[j].Type
	})
	return events, nil
}

// MonthlyPRSummary runs PR detection over every completed session in the
// calendar month containing referenceTime. Each session is scored against
// its own exclusion window, so records can compound across the month. The
// result is in session chronological order.
func (e *Engine) MonthlyPRSummary(ctx context.Context, referenceTimeMs int64) ([]SessionPREvent, error) {
	ref := time.UnixMilli(referenceTimeMs)
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local).UnixMilli()
	monthEnd := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, time.Local).UnixMilli()

	sessionIDs, err := e.db.CompletedSessionIDsBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	var results []SessionPREvent
	for _, id := range sessionIDs {
		events, err := e.DetectNewPR(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("detecting PRs for session %d: %w", id, err)
		}
		for _, ev := range events {
			results = append(results, SessionPREvent{PREvent: ev, SessionID: id})
		}
	}
	return results, nil
}

// PersonalRecords returns the current best weight per exercise across all
// completed sessions, ordered by muscle group then exercise name.
func (e *Engine) PersonalRecords(ctx context.Context) ([]storage.PersonalRecord, error) {
	return e.db.PersonalRecords(ctx)
}

func nullMax(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return math.Inf(-1)
}

func reverse(points []storage.VolumePoint) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
