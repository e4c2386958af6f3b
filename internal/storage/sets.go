package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/meltforce/gigofit/internal/models"
)

// AddSet logs one (weight, reps) pair against a session and exercise.
// Referential integrity is the store's job: inserting against unknown ids
// surfaces the constraint error to the caller.
func (d *DB) AddSet(ctx context.Context, sessionID, exerciseID int64, weight float64, reps int) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO sets (session_id, exercise_id, weight, reps, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, exerciseID, weight, reps, nowMs())
	if err != nil {
		return 0, fmt.Errorf("inserting set: %w", err)
	}
	return res.LastInsertId()
}

// UpdateSet overwrites weight and reps in place, preserving the set's id and
// created_at ordering.
func (d *DB) UpdateSet(ctx context.Context, id int64, weight float64, reps int) error {
	if _, err := d.db.ExecContext(ctx,
		`UPDATE sets SET weight = ?, reps = ? WHERE id = ?`, weight, reps, id); err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	return nil
}

// DeleteSet removes a single set by id.
func (d *DB) DeleteSet(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	return nil
}

// GetSetsForSession returns a session's sets joined with exercise names,
// most recent first for the live workout view.
func (d *DB) GetSetsForSession(ctx context.Context, sessionID int64) ([]models.SetDetail, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT st.id, st.session_id, st.exercise_id, st.weight, st.reps, st.created_at, e.name
		 FROM sets st
		 JOIN exercises e ON e.id = st.exercise_id
		 WHERE st.session_id = ?
		 ORDER BY st.created_at DESC, st.id DESC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	var result []models.SetDetail
	for rows.Next() {
		var s models.SetDetail
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.Weight, &s.Reps, &s.CreatedAt, &s.ExerciseName); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetGhostValues returns the most recently logged weight/reps for an exercise
// across all sessions, or nil if the exercise has never been logged. Used to
// pre-fill the set input form.
func (d *DB) GetGhostValues(ctx context.Context, exerciseID int64) (*models.GhostValues, error) {
	var g models.GhostValues
	err := d.db.QueryRowContext(ctx,
		`SELECT weight, reps
		 FROM sets
		 WHERE exercise_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, exerciseID).Scan(&g.Weight, &g.Reps)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying ghost values: %w", err)
	}
	return &g, nil
}
