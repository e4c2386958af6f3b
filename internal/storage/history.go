package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/meltforce/gigofit/internal/models"
)

const historyColumns = `
	s.id, s.start_time, s.end_time, s.vibe, s.display_name,
	COALESCE(SUM(st.weight * st.reps), 0) AS total_volume,
	COUNT(st.id) AS total_sets,
	s.elapsed_time`

// GetSessionsForMonth returns the completed sessions whose start time falls
// within the given calendar month, newest first, each annotated with its
// total volume and set count.
func (d *DB) GetSessionsForMonth(ctx context.Context, year int, month time.Month) ([]models.HistorySession, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).UnixMilli()
	monthEnd := time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).UnixMilli()

	rows, err := d.db.QueryContext(ctx,
		`SELECT `+historyColumns+`
		 FROM sessions s
		 LEFT JOIN sets st ON st.session_id = s.id
		 WHERE s.end_time IS NOT NULL
		   AND s.start_time >= ? AND s.start_time < ?
		 GROUP BY s.id
		 ORDER BY s.start_time DESC, s.id DESC`,
		monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("querying month sessions: %w", err)
	}
	defer rows.Close()

	return scanHistorySessions(rows)
}

// GetSessionHistory returns every completed session with its aggregates,
// newest first, for the flat history list.
func (d *DB) GetSessionHistory(ctx context.Context) ([]models.HistorySession, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+historyColumns+`
		 FROM sessions s
		 LEFT JOIN sets st ON st.session_id = s.id
		 WHERE s.end_time IS NOT NULL
		 GROUP BY s.id
		 ORDER BY s.start_time DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying session history: %w", err)
	}
	defer rows.Close()

	return scanHistorySessions(rows)
}

// GetSessionSummary builds the completion-card payload for one session:
// totals, computed duration, and a per-exercise breakdown ordered by when
// each exercise was first logged. Returns nil for an unknown id.
func (d *DB) GetSessionSummary(ctx context.Context, id int64) (*models.SessionSummary, error) {
	session, err := d.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	summary := &models.SessionSummary{
		Session:         *session,
		DurationMinutes: sessionDurationMinutes(session),
	}

	err = d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight * reps), 0), COUNT(*)
		 FROM sets WHERE session_id = ?`, id).
		Scan(&summary.TotalVolume, &summary.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("querying session totals: %w", err)
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT e.name, COUNT(*), SUM(st.weight * st.reps)
		 FROM sets st
		 JOIN exercises e ON e.id = st.exercise_id
		 WHERE st.session_id = ?
		 GROUP BY st.exercise_id, e.name
		 ORDER BY MIN(st.created_at) ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying exercise breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.ExerciseSummary
		if err := rows.Scan(&e.ExerciseName, &e.SetCount, &e.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning exercise summary: %w", err)
		}
		summary.Exercises = append(summary.Exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

// sessionDurationMinutes prefers the persisted timer; sessions ended before
// timer persistence existed fall back to wall-clock duration.
func sessionDurationMinutes(s *models.Session) int {
	seconds := s.ElapsedTime
	if seconds == 0 && s.EndTime != nil {
		seconds = (*s.EndTime - s.StartTime) / 1000
	}
	if seconds < 0 {
		seconds = 0
	}
	return int(seconds / 60)
}

func scanHistorySessions(rows *sql.Rows) ([]models.HistorySession, error) {
	var result []models.HistorySession
	for rows.Next() {
		var (
			h           models.HistorySession
			endTime     sql.NullInt64
			displayName sql.NullString
			elapsed     int64
		)
		if err := rows.Scan(&h.ID, &h.StartTime, &endTime, &h.Vibe, &displayName,
			&h.TotalVolume, &h.TotalSets, &elapsed); err != nil {
			return nil, fmt.Errorf("scanning history session: %w", err)
		}
		if endTime.Valid {
			h.EndTime = &endTime.Int64
		}
		if displayName.Valid {
			h.DisplayName = &displayName.String
		}
		h.DurationMinutes = sessionDurationMinutes(&models.Session{
			StartTime:   h.StartTime,
			EndTime:     h.EndTime,
			ElapsedTime: elapsed,
		})
		result = append(result, h)
	}
	return result, rows.Err()
}
