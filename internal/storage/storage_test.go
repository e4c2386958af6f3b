package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/meltforce/gigofit/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDB opens a fresh database in a temp dir, fully migrated and seeded.
func testDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(context.Background(), filepath.Join(t.TempDir(), "gigofit.db"), testLogger())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// setNow pins the injected clock for the duration of the test.
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

// insertSession writes a session row directly so tests control timestamps.
// endMs == 0 leaves the session active.
func insertSession(t *testing.T, d *DB, startMs, endMs int64, vibe models.Vibe, elapsedSeconds int64) int64 {
	t.Helper()
	var end any
	if endMs != 0 {
		end = endMs
	}
	res, err := d.db.Exec(
		`INSERT INTO sessions (start_time, end_time, vibe, elapsed_time, is_paused, display_name)
		 VALUES (?, ?, ?, ?, 0, NULL)`,
		startMs, end, int(vibe), elapsedSeconds)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("session id: %v", err)
	}
	return id
}

// insertSet writes a set row directly with an explicit created_at.
func insertSet(t *testing.T, d *DB, sessionID, exerciseID int64, weight float64, reps int, createdMs int64) int64 {
	t.Helper()
	res, err := d.db.Exec(
		`INSERT INTO sets (session_id, exercise_id, weight, reps, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, exerciseID, weight, reps, createdMs)
	if err != nil {
		t.Fatalf("insert set: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("set id: %v", err)
	}
	return id
}

// exerciseID looks up a seeded exercise by name.
func exerciseID(t *testing.T, d *DB, name string) int64 {
	t.Helper()
	var id int64
	if err := d.db.QueryRow(`SELECT id FROM exercises WHERE name = ?`, name).Scan(&id); err != nil {
		t.Fatalf("exercise %q: %v", name, err)
	}
	return id
}

func countSets(t *testing.T, d *DB, sessionID int64) int {
	t.Helper()
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM sets WHERE session_id = ?`, sessionID).Scan(&n); err != nil {
		t.Fatalf("count sets: %v", err)
	}
	return n
}
