package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/meltforce/gigofit/internal/format"
	"github.com/meltforce/gigofit/internal/models"
)

const sessionColumns = `id, start_time, end_time, vibe, elapsed_time, is_paused, display_name`

// StartSession inserts a new active session and returns its id. A blank
// display name falls back to "Workout - N", where N counts prior completed
// sessions that logged at least one set, so aborted empty sessions never
// inflate the numbering.
func (d *DB) StartSession(ctx context.Context, vibe models.Vibe, displayName string) (int64, error) {
	if !vibe.Valid() {
		return 0, fmt.Errorf("invalid vibe %d", int(vibe))
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		number, err := d.nextWorkoutNumber(ctx)
		if err != nil {
			return 0, fmt.Errorf("deriving default name: %w", err)
		}
		name = format.BuildDefaultWorkoutName(float64(number))
	}

	res, err := d.db.ExecContext(ctx,
		`INSERT INTO sessions (start_time, end_time, vibe, elapsed_time, is_paused, display_name)
		 VALUES (?, NULL, ?, 0, 0, ?)`,
		nowMs(), int(vibe), name)
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	return res.LastInsertId()
}

// nextWorkoutNumber counts completed sessions that have at least one set and
// returns the next sequential workout number.
func (d *DB) nextWorkoutNumber(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM sessions s
		 WHERE s.end_time IS NOT NULL
		   AND EXISTS (SELECT 1 FROM sets st WHERE st.session_id = s.id)`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// GetActiveSession returns the session with no end time, or nil if every
// session is completed. If more than one is somehow active, the most recently
// started wins.
func (d *DB) GetActiveSession(ctx context.Context) (*models.Session, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE end_time IS NULL
		 ORDER BY start_time DESC, id DESC
		 LIMIT 1`)
	return scanSession(row)
}

// GetSessionByID returns the session, or nil if the id does not exist.
func (d *DB) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// UpdateSessionTimer persists the running timer state. Seconds are floored to
// whole values and clamped at 0. Failures are logged and swallowed: a missed
// periodic write must never interrupt the user-facing timer.
func (d *DB) UpdateSessionTimer(ctx context.Context, id int64, elapsedSeconds float64, isPaused bool) {
	seconds := int64(math.Floor(elapsedSeconds))
	if seconds < 0 {
		seconds = 0
	}
	_, err := d.db.ExecContext(ctx,
		`UPDATE sessions SET elapsed_time = ?, is_paused = ? WHERE id = ?`,
		seconds, boolToInt(isPaused), id)
	if err != nil {
		d.log.Warn("timer persistence failed", "session_id", id, "error", err)
	}
}

// EndSessionWithTimer finalizes a session: inside one transaction it writes
// the final elapsed time, forces the paused flag, and stamps the end time.
// Both writes commit together or neither does. Ending an already-completed
// or unknown session is an error; finalization is a one-way transition.
func (d *DB) EndSessionWithTimer(ctx context.Context, id int64, elapsedSeconds float64) error {
	seconds := int64(math.Floor(elapsedSeconds))
	if seconds < 0 {
		seconds = 0
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning finalization: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET elapsed_time = ?, is_paused = 1 WHERE id = ?`,
		seconds, id); err != nil {
		return fmt.Errorf("writing final timer: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET end_time = ? WHERE id = ? AND end_time IS NULL`,
		nowMs(), id)
	if err != nil {
		return fmt.Errorf("stamping end time: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("session %d not found or already ended", id)
	}

	return tx.Commit()
}

// RenameSession updates the display name. Blank input falls back to the
// computed default rather than storing an empty string.
func (d *DB) RenameSession(ctx context.Context, id int64, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		number, err := d.nextWorkoutNumber(ctx)
		if err != nil {
			return fmt.Errorf("deriving default name: %w", err)
		}
		trimmed = format.BuildDefaultWorkoutName(float64(number))
	}
	if _, err := d.db.ExecContext(ctx,
		`UPDATE sessions SET display_name = ? WHERE id = ?`, trimmed, id); err != nil {
		return fmt.Errorf("renaming session: %w", err)
	}
	return nil
}

// HardDeleteSession removes the session row. Its sets disappear through the
// ON DELETE CASCADE constraint; exactly one delete statement is issued here.
func (d *DB) HardDeleteSession(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// GetSessionVolume sums weight x reps over one session's sets. Returns 0 for
// a session with no sets.
func (d *DB) GetSessionVolume(ctx context.Context, id int64) (float64, error) {
	var volume float64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight * reps), 0) FROM sets WHERE session_id = ?`, id).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("querying session volume: %w", err)
	}
	return volume, nil
}

// GetTotalVolume sums weight x reps over every logged set.
func (d *DB) GetTotalVolume(ctx context.Context) (float64, error) {
	var volume float64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight * reps), 0) FROM sets`).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("querying total volume: %w", err)
	}
	return volume, nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		s           models.Session
		endTime     sql.NullInt64
		displayName sql.NullString
		isPaused    int
	)
	err := row.Scan(&s.ID, &s.StartTime, &endTime, &s.Vibe, &s.ElapsedTime, &isPaused, &displayName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if endTime.Valid {
		s.EndTime = &endTime.Int64
	}
	if displayName.Valid {
		s.DisplayName = &displayName.String
	}
	s.IsPaused = isPaused != 0
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
