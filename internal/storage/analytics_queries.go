package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/meltforce/gigofit/internal/models"
)

// VolumePoint is one week or month bucket of total lifted volume.
type VolumePoint struct {
	Bucket      string  `json:"bucket"`
	TotalVolume float64 `json:"total_volume"`
}

// WeeklyMaxPoint is the per-week maximum weight lifted for one exercise.
type WeeklyMaxPoint struct {
	Week      string  `json:"week"`
	MaxWeight float64 `json:"max_weight"`
}

// Weekly1RMPoint is the per-week maximum Epley-estimated one-rep max.
type Weekly1RMPoint struct {
	Week            string  `json:"week"`
	MaxEstimated1RM float64 `json:"max_estimated_1rm"`
}

// SetMetrics carries one set's three PR candidate metrics.
type SetMetrics struct {
	ExerciseID   int64
	Weight       float64
	Reps         int
	SetVolume    float64
	Estimated1RM float64
}

// HistoricalMax holds an exercise's best weight, set volume, and estimated
// 1RM across completed sessions. Null when no qualifying history exists.
type HistoricalMax struct {
	ExerciseID int64
	MaxWeight  sql.NullFloat64
	MaxVolume  sql.NullFloat64
	Max1RM     sql.NullFloat64
}

// PersonalRecord is an exercise's all-time best weight with catalog context.
type PersonalRecord struct {
	ExerciseID   int64              `json:"exercise_id"`
	ExerciseName string             `json:"exercise_name"`
	MuscleGroup  models.MuscleGroup `json:"muscle_group"`
	MaxWeight    float64            `json:"max_weight"`
}

// WeeklyVolume returns per-week total volume over completed sessions, most
// recent weeks first, limited to the given count. Callers wanting chart order
// reverse the result.
func (d *DB) WeeklyVolume(ctx context.Context, limit int) ([]VolumePoint, error) {
	return d.volumeBuckets(ctx, "%Y-%W", limit)
}

// MonthlyVolume is WeeklyVolume with calendar-month buckets.
func (d *DB) MonthlyVolume(ctx context.Context, limit int) ([]VolumePoint, error) {
	return d.volumeBuckets(ctx, "%Y-%m", limit)
}

func (d *DB) volumeBuckets(ctx context.Context, layout string, limit int) ([]VolumePoint, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			strftime(?, datetime(s.start_time / 1000, 'unixepoch')) AS bucket,
			SUM(st.weight * st.reps) AS total_volume
		 FROM sessions s
		 JOIN sets st ON st.session_id = s.id
		 WHERE s.end_time IS NOT NULL
		 GROUP BY bucket
		 ORDER BY bucket DESC
		 LIMIT ?`,
		layout, limit)
	if err != nil {
		return nil, fmt.Errorf("querying volume buckets: %w", err)
	}
	defer rows.Close()

	var result []VolumePoint
	for rows.Next() {
		var p VolumePoint
		if err := rows.Scan(&p.Bucket, &p.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning volume bucket: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ExerciseWeeklyMax returns the per-week max weight for one exercise in
// ascending week order.
func (d *DB) ExerciseWeeklyMax(ctx context.Context, exerciseID int64) ([]WeeklyMaxPoint, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			strftime('%Y-%W', datetime(s.start_time / 1000, 'unixepoch')) AS week,
			MAX(st.weight) AS max_weight
		 FROM sessions s
		 JOIN sets st ON st.session_id = s.id
		 WHERE st.exercise_id = ?
		 GROUP BY week
		 ORDER BY week ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying weekly max: %w", err)
	}
	defer rows.Close()

	var result []WeeklyMaxPoint
	for rows.Next() {
		var p WeeklyMaxPoint
		if err := rows.Scan(&p.Week, &p.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning weekly max: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ExerciseWeekly1RM returns the per-week max of the Epley estimate
// weight * (1 + reps/30) for one exercise, ascending by week.
func (d *DB) ExerciseWeekly1RM(ctx context.Context, exerciseID int64) ([]Weekly1RMPoint, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			strftime('%Y-%W', datetime(s.start_time / 1000, 'unixepoch')) AS week,
			MAX(st.weight * (1 + st.reps / 30.0)) AS max_estimated_1rm
		 FROM sessions s
		 JOIN sets st ON st.session_id = s.id
		 WHERE st.exercise_id = ?
		 GROUP BY week
		 ORDER BY week ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying weekly 1rm: %w", err)
	}
	defer rows.Close()

	var result []Weekly1RMPoint
	for rows.Next() {
		var p Weekly1RMPoint
		if err := rows.Scan(&p.Week, &p.MaxEstimated1RM); err != nil {
			return nil, fmt.Errorf("scanning weekly 1rm: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// SessionSetMetrics returns every set in a session with its PR candidate
// metrics precomputed.
func (d *DB) SessionSetMetrics(ctx context.Context, sessionID int64) ([]SetMetrics, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			exercise_id,
			weight,
			reps,
			(weight * reps) AS set_volume,
			(weight * (1 + reps / 30.0)) AS estimated_1rm
		 FROM sets
		 WHERE session_id = ?`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session set metrics: %w", err)
	}
	defer rows.Close()

	var result []SetMetrics
	for rows.Next() {
		var m SetMetrics
		if err := rows.Scan(&m.ExerciseID, &m.Weight, &m.Reps, &m.SetVolume, &m.Estimated1RM); err != nil {
			return nil, fmt.Errorf("scanning set metrics: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// HistoricalMaxes returns each exercise's best weight/volume/1RM over
// completed sessions, excluding the given session so a session is never
// compared against itself.
func (d *DB) HistoricalMaxes(ctx context.Context, exerciseIDs []int64, excludeSessionID int64) ([]HistoricalMax, error) {
	if len(exerciseIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(exerciseIDs)), ",")
	args := make([]any, 0, len(exerciseIDs)+1)
	for _, id := range exerciseIDs {
		args = append(args, id)
	}
	args = append(args, excludeSessionID)

	rows, err := d.db.QueryContext(ctx,
		`SELECT
			st.exercise_id,
			MAX(st.weight) AS max_weight,
			MAX(st.weight * st.reps) AS max_volume,
			MAX(st.weight * (1 + st.reps / 30.0)) AS max_1rm
		 FROM sets st
		 JOIN sessions s ON s.id = st.session_id
		 WHERE st.exercise_id IN (`+placeholders+`)
		   AND st.session_id != ?
		   AND s.end_time IS NOT NULL
		 GROUP BY st.exercise_id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying historical maxes: %w", err)
	}
	defer rows.Close()

	var result []HistoricalMax
	for rows.Next() {
		var h HistoricalMax
		if err := rows.Scan(&h.ExerciseID, &h.MaxWeight, &h.MaxVolume, &h.Max1RM); err != nil {
			return nil, fmt.Errorf("scanning historical max: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// CompletedSessionIDsBetween returns ids of completed sessions whose start
// time falls in [startMs, endMs), in chronological order.
func (d *DB) CompletedSessionIDsBetween(ctx context.Context, startMs, endMs int64) ([]int64, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id
		 FROM sessions
		 WHERE start_time >= ? AND start_time < ?
		   AND end_time IS NOT NULL
		 ORDER BY start_time ASC, id ASC`,
		startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("querying month session ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PersonalRecords returns each exercise's all-time best weight across
// completed sessions, ordered by muscle group then exercise name.
func (d *DB) PersonalRecords(ctx context.Context) ([]PersonalRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			st.exercise_id,
			e.name,
			e.muscle_group,
			MAX(st.weight) AS max_weight
		 FROM sets st
		 JOIN sessions s ON s.id = st.session_id
		 JOIN exercises e ON e.id = st.exercise_id
		 WHERE s.end_time IS NOT NULL
		 GROUP BY st.exercise_id, e.name, e.muscle_group
		 ORDER BY e.muscle_group ASC, e.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []PersonalRecord
	for rows.Next() {
		var r PersonalRecord
		if err := rows.Scan(&r.ExerciseID, &r.ExerciseName, &r.MuscleGroup, &r.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// PreviousSessionVolume returns the total volume of the completed session one
// position back in start-time order, or nil when no such session exists.
// Set-less sessions do not appear in the ranking, mirroring the history view.
func (d *DB) PreviousSessionVolume(ctx context.Context) (*float64, error) {
	var volume float64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(st.weight * st.reps), 0) AS total_volume
		 FROM sessions s
		 JOIN sets st ON st.session_id = s.id
		 WHERE s.end_time IS NOT NULL
		 GROUP BY s.id
		 ORDER BY s.start_time DESC, s.id DESC
		 LIMIT 1 OFFSET 1`).Scan(&volume)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying previous session volume: %w", err)
	}
	return &volume, nil
}
