package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the embedded SQLite database and provides repository methods.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the database at path, brings the schema to the
// current version, and seeds the exercise catalog if empty. Any failure
// during initialization closes the handle and propagates.
func Open(ctx context.Context, path string, log *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := &DB{db: sqlDB, log: log}

	if err := d.configurePragmas(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("configuring pragmas: %w", err)
	}
	if err := d.createTables(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	if err := d.runMigrations(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := d.seedExercises(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("seeding exercises: %w", err)
	}

	return d, nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) configurePragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("executing %s: %w", pragma, err)
		}
	}
	return nil
}

// createTables creates the current-shape tables when absent. Pre-existing
// tables from older installs are left untouched here; the migration chain
// brings them forward.
func (d *DB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL,
		category     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time   INTEGER NOT NULL,
		end_time     INTEGER,
		vibe         INTEGER NOT NULL DEFAULT 1,
		elapsed_time INTEGER NOT NULL DEFAULT 0,
		is_paused    INTEGER NOT NULL DEFAULT 0,
		display_name TEXT
	);

	CREATE TABLE IF NOT EXISTS sets (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight      REAL NOT NULL,
		reps        INTEGER NOT NULL,
		created_at  INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sets_session ON sets(session_id);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise ON sets(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time DESC);
	`
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

func nowMs() int64 {
	return timeNow().UnixMilli()
}
