package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/gigofit/internal/models"
)

// WeekSessionCount is how many completed sessions landed in one week bucket.
type WeekSessionCount struct {
	Week  string
	Count int
}

// SessionVolumeRow is a completed session's vibe and total volume, used by
// the focus-count scan.
type SessionVolumeRow struct {
	ID     int64
	Vibe   models.Vibe
	Volume float64
}

// CompletedTotalVolume sums weight x reps over all sets belonging to
// completed sessions, all time.
func (d *DB) CompletedTotalVolume(ctx context.Context) (float64, error) {
	var volume float64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(st.weight * st.reps), 0)
		 FROM sets st
		 JOIN sessions s ON s.id = st.session_id
		 WHERE s.end_time IS NOT NULL`).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("querying completed total volume: %w", err)
	}
	return volume, nil
}

// WeeklySessionCounts groups completed sessions since the given time into
// week buckets. Weeks with zero sessions produce no row.
func (d *DB) WeeklySessionCounts(ctx context.Context, sinceMs int64) ([]WeekSessionCount, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT
			strftime('%Y-%W', datetime(start_time / 1000, 'unixepoch')) AS week,
			COUNT(*) AS session_count
		 FROM sessions
		 WHERE end_time IS NOT NULL AND start_time >= ?
		 GROUP BY week`,
		sinceMs)
	if err != nil {
		return nil, fmt.Errorf("querying weekly session counts: %w", err)
	}
	defer rows.Close()

	var result []WeekSessionCount
	for rows.Next() {
		var w WeekSessionCount
		if err := rows.Scan(&w.Week, &w.Count); err != nil {
			return nil, fmt.Errorf("scanning week count: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// AverageSessionMinutes averages elapsed time (in minutes) over completed
// sessions that actually recorded a timer; zero-timer sessions are excluded
// from the average, not treated as zero. Returns 0 when none qualify.
func (d *DB) AverageSessionMinutes(ctx context.Context) (float64, error) {
	var minutes float64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(elapsed_time / 60.0), 0)
		 FROM sessions
		 WHERE end_time IS NOT NULL AND elapsed_time > 0`).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("querying average session minutes: %w", err)
	}
	return minutes, nil
}

// CompletedSessionVolumes returns every completed session with its total
// volume in chronological order. Sessions without sets appear with volume 0.
func (d *DB) CompletedSessionVolumes(ctx context.Context) ([]SessionVolumeRow, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT s.id, s.vibe, COALESCE(SUM(st.weight * st.reps), 0) AS volume
		 FROM sessions s
		 LEFT JOIN sets st ON st.session_id = s.id
		 WHERE s.end_time IS NOT NULL
		 GROUP BY s.id
		 ORDER BY s.start_time ASC, s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying session volumes: %w", err)
	}
	defer rows.Close()

	var result []SessionVolumeRow
	for rows.Next() {
		var r SessionVolumeRow
		if err := rows.Scan(&r.ID, &r.Vibe, &r.Volume); err != nil {
			return nil, fmt.Errorf("scanning session volume: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CountCompletedByVibe counts completed sessions with the given vibe.
func (d *DB) CountCompletedByVibe(ctx context.Context, vibe models.Vibe) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE end_time IS NOT NULL AND vibe = ?`,
		int(vibe)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sessions by vibe: %w", err)
	}
	return count, nil
}
