package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// legacyFixture creates a database in the pre-versioning layout: textual
// timestamps on sessions and sets, textual vibe enum, no cascade delete.
func legacyFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gigofit.db")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	defer raw.Close()

	schema := `
	CREATE TABLE exercises (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL,
		category     TEXT NOT NULL
	);

	CREATE TABLE sessions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		vibe       TEXT NOT NULL DEFAULT 'normal'
	);

	CREATE TABLE sets (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight      REAL NOT NULL,
		reps        INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);
	`
	if _, err := raw.Exec(schema); err != nil {
		t.Fatalf("create legacy schema: %v", err)
	}

	fixture := `
	INSERT INTO exercises (id, name, muscle_group, category) VALUES (1, 'Bench Press', 'chest', 'compound');

	INSERT INTO sessions (id, started_at, ended_at, vibe) VALUES
		(1, '2024-01-15 10:00:00', '2024-01-15 11:00:00', 'low'),
		(2, '2024-01-16 18:30:00', '2024-01-16 19:15:00', 'crushing'),
		(3, '2024-01-17 08:00:00', NULL, 'normal'),
		(4, '2024-01-18 09:00:00', '2024-01-18 10:00:00', 'zen');

	INSERT INTO sets (id, session_id, exercise_id, weight, reps, created_at) VALUES
		(1, 1, 1, 80, 8, '2024-01-15 10:05:00'),
		(2, 2, 1, 85, 6, '2024-01-16 18:40:00');
	`
	if _, err := raw.Exec(fixture); err != nil {
		t.Fatalf("insert legacy fixture: %v", err)
	}

	return path
}

// TestLegacyMigration verifies the textual schema is rewritten into the
// integer-timestamp shape with ids, vibes, and timestamps carried over.
func TestLegacyMigration(t *testing.T) {
	ctx := context.Background()
	path := legacyFixture(t)

	d, err := Open(ctx, path, testLogger())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer d.Close()

	tests := []struct {
		id       int64
		wantVibe int
		wantEnd  bool
	}{
		{1, 0, true},  // low
		{2, 2, true},  // crushing
		{3, 1, false}, // normal, still active
		{4, 1, true},  // unknown label coerces to normal
	}

	for _, tt := range tests {
		session, err := d.GetSessionByID(ctx, tt.id)
		if err != nil {
			t.Fatalf("GetSessionByID(%d) error: %v", tt.id, err)
		}
		if session == nil {
			t.Fatalf("session %d missing after migration", tt.id)
		}
		if int(session.Vibe) != tt.wantVibe {
			t.Errorf("session %d vibe = %d, want %d", tt.id, session.Vibe, tt.wantVibe)
		}
		if (session.EndTime != nil) != tt.wantEnd {
			t.Errorf("session %d end_time present = %v, want %v", tt.id, session.EndTime != nil, tt.wantEnd)
		}
		if session.ElapsedTime != 0 {
			t.Errorf("session %d elapsed_time = %d, want 0", tt.id, session.ElapsedTime)
		}
	}

	// '2024-01-15 10:00:00' parsed as UTC: 1705312800000 ms.
	first, err := d.GetSessionByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetSessionByID(1) error: %v", err)
	}
	if first.StartTime != 1705312800000 {
		t.Errorf("session 1 start_time = %d, want 1705312800000", first.StartTime)
	}
	if first.EndTime == nil || *first.EndTime != 1705316400000 {
		t.Errorf("session 1 end_time = %v, want 1705316400000", first.EndTime)
	}

	// Sets keep their ids and get millisecond timestamps.
	var created int64
	if err := d.db.QueryRow(`SELECT created_at FROM sets WHERE id = 1`).Scan(&created); err != nil {
		t.Fatalf("set 1: %v", err)
	}
	if created != 1705313100000 {
		t.Errorf("set 1 created_at = %d, want 1705313100000", created)
	}

	// The rewrite must reach the latest version in one pass.
	version, err := d.schemaVersion(ctx)
	if err != nil {
		t.Fatalf("schemaVersion error: %v", err)
	}
	if want := migrations[len(migrations)-1].version; version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}
}

// TestLegacyMigrationEnforcesCascade verifies that after the rewrite,
// deleting a session removes its sets through the foreign key.
func TestLegacyMigrationEnforcesCascade(t *testing.T) {
	ctx := context.Background()
	path := legacyFixture(t)

	d, err := Open(ctx, path, testLogger())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer d.Close()

	cascades, err := d.setsSessionCascade(ctx)
	if err != nil {
		t.Fatalf("setsSessionCascade error: %v", err)
	}
	if !cascades {
		t.Fatal("sets->sessions cascade missing after migration")
	}

	if err := d.HardDeleteSession(ctx, 1); err != nil {
		t.Fatalf("HardDeleteSession error: %v", err)
	}
	if n := countSets(t, d, 1); n != 0 {
		t.Errorf("sets for deleted session = %d, want 0", n)
	}
}

// TestCascadeRebuild verifies the version-5 step rebuilds a modern-shape sets
// table that lacks ON DELETE CASCADE, preserving rows.
func TestCascadeRebuild(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gigofit.db")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}

	schema := `
	CREATE TABLE exercises (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL,
		category     TEXT NOT NULL
	);

	CREATE TABLE sessions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time   INTEGER NOT NULL,
		end_time     INTEGER,
		vibe         INTEGER NOT NULL DEFAULT 1,
		elapsed_time INTEGER NOT NULL DEFAULT 0,
		is_paused    INTEGER NOT NULL DEFAULT 0,
		display_name TEXT
	);

	CREATE TABLE sets (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight      REAL NOT NULL,
		reps        INTEGER NOT NULL,
		created_at  INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE schema_version (version INTEGER NOT NULL);
	INSERT INTO schema_version (version) VALUES (4);

	INSERT INTO exercises (id, name, muscle_group, category) VALUES (1, 'Deadlift', 'back', 'compound');
	INSERT INTO sessions (id, start_time, end_time, vibe) VALUES (1, 1000, 2000, 1);
	INSERT INTO sets (id, session_id, exercise_id, weight, reps, created_at) VALUES (1, 1, 1, 140, 5, 1500);
	`
	if _, err := raw.Exec(schema); err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	raw.Close()

	d, err := Open(ctx, path, testLogger())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer d.Close()

	cascades, err := d.setsSessionCascade(ctx)
	if err != nil {
		t.Fatalf("setsSessionCascade error: %v", err)
	}
	if !cascades {
		t.Fatal("cascade missing after rebuild")
	}

	var weight float64
	if err := d.db.QueryRow(`SELECT weight FROM sets WHERE id = 1`).Scan(&weight); err != nil {
		t.Fatalf("set row lost in rebuild: %v", err)
	}
	if weight != 140 {
		t.Errorf("set weight = %v, want 140", weight)
	}
}
