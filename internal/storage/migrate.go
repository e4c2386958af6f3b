package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// A migration brings the schema from version Version-1 to Version. Shipped
// steps are append-only: never edit an existing step, only add new ones.
// Each step checks the live table shape before acting, so a database that
// already carries the target shape passes through unchanged.
type migration struct {
	version int
	name    string
	run     func(ctx context.Context, d *DB) error
}

var migrations = []migration{
	{1, "rewrite legacy text-timestamp schema", migrateLegacySchema},
	{2, "add sessions.elapsed_time", migrateAddElapsedTime},
	{3, "add sessions.is_paused", migrateAddIsPaused},
	{4, "add sessions.display_name", migrateAddDisplayName},
	{5, "enforce sets->sessions cascade delete", migrateSetsCascade},
}

// runMigrations replays pending migrations in strict sequential order,
// recording the applied version after each step succeeds. A failing step
// aborts the whole initialization: no partial-version commit.
func (d *DB) runMigrations(ctx context.Context) error {
	current, err := d.schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := m.run(ctx, d); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if err := d.setSchemaVersion(ctx, m.version); err != nil {
			return fmt.Errorf("recording version %d: %w", m.version, err)
		}
		d.log.Info("migration applied", "version", m.version, "name", m.name)
	}
	return nil
}

func (d *DB) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := d.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := d.db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return version, err
}

func (d *DB) setSchemaVersion(ctx context.Context, version int) error {
	_, err := d.db.ExecContext(ctx, `UPDATE schema_version SET version = ?`, version)
	return err
}

// tableHasColumn introspects the live table shape rather than trusting the
// version counter alone; mixed-version installs in the wild may not match
// the clean migration path.
func (d *DB) tableHasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// migrateLegacySchema detects the pre-versioning layout (textual started_at /
// ended_at on sessions, textual vibe enum, textual created_at on sets) and
// rewrites both tables into the integer-timestamp shape, preserving ids.
// Missing timer fields default to 0/false. Runs before anything that depends
// on the new shape.
func migrateLegacySchema(ctx context.Context, d *DB) error {
	hasStartTime, err := d.tableHasColumn(ctx, "sessions", "start_time")
	if err != nil {
		return err
	}
	if hasStartTime {
		return nil
	}

	// Table rebuilds referencing each other, so drop referential checks for
	// exactly this script's duration. The pragma is per-connection, so pin
	// one connection for both the pragma and the transaction.
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return err
	}
	defer conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	script := `
	CREATE TABLE sessions_new (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time   INTEGER NOT NULL,
		end_time     INTEGER,
		vibe         INTEGER NOT NULL DEFAULT 1,
		elapsed_time INTEGER NOT NULL DEFAULT 0,
		is_paused    INTEGER NOT NULL DEFAULT 0,
		display_name TEXT
	);

	INSERT INTO sessions_new (id, start_time, end_time, vibe, elapsed_time, is_paused, display_name)
	SELECT
		id,
		CAST(strftime('%s', started_at) AS INTEGER) * 1000,
		CASE WHEN ended_at IS NULL THEN NULL
		     ELSE CAST(strftime('%s', ended_at) AS INTEGER) * 1000 END,
		CASE vibe WHEN 'low' THEN 0 WHEN 'crushing' THEN 2 ELSE 1 END,
		0,
		0,
		NULL
	FROM sessions;

	DROP TABLE sessions;
	ALTER TABLE sessions_new RENAME TO sessions;

	CREATE TABLE sets_new (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight      REAL NOT NULL,
		reps        INTEGER NOT NULL,
		created_at  INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	INSERT INTO sets_new (id, session_id, exercise_id, weight, reps, created_at)
	SELECT
		id,
		session_id,
		exercise_id,
		weight,
		reps,
		CAST(strftime('%s', created_at) AS INTEGER) * 1000
	FROM sets;

	DROP TABLE sets;
	ALTER TABLE sets_new RENAME TO sets;

	CREATE INDEX IF NOT EXISTS idx_sets_session ON sets(session_id);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise ON sets(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time DESC);
	`
	for _, stmt := range splitStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("legacy rewrite: %w", err)
		}
	}

	return tx.Commit()
}

func migrateAddElapsedTime(ctx context.Context, d *DB) error {
	return d.addColumnIfMissing(ctx, "sessions", "elapsed_time", "INTEGER NOT NULL DEFAULT 0")
}

func migrateAddIsPaused(ctx context.Context, d *DB) error {
	return d.addColumnIfMissing(ctx, "sessions", "is_paused", "INTEGER NOT NULL DEFAULT 0")
}

func migrateAddDisplayName(ctx context.Context, d *DB) error {
	return d.addColumnIfMissing(ctx, "sessions", "display_name", "TEXT")
}

func (d *DB) addColumnIfMissing(ctx context.Context, table, column, definition string) error {
	present, err := d.tableHasColumn(ctx, table, column)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	_, err = d.db.ExecContext(ctx,
		fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition))
	return err
}

// migrateSetsCascade checks the sets->sessions foreign key for cascade-delete
// semantics. SQLite cannot alter a constraint in place, so a key without it
// means a shadow-table rebuild: create the desired shape, copy rows, swap
// names, drop the old table, all inside one atomic script with referential
// checks suspended.
func migrateSetsCascade(ctx context.Context, d *DB) error {
	cascades, err := d.setsSessionCascade(ctx)
	if err != nil {
		return err
	}
	if cascades {
		return nil
	}

	conn, err := d.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return err
	}
	defer conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	script := `
	ALTER TABLE sets RENAME TO sets_old;

	CREATE TABLE sets (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight      REAL NOT NULL,
		reps        INTEGER NOT NULL,
		created_at  INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	INSERT INTO sets (id, session_id, exercise_id, weight, reps, created_at)
	SELECT id, session_id, exercise_id, weight, reps, created_at FROM sets_old;

	DROP TABLE sets_old;

	CREATE INDEX IF NOT EXISTS idx_sets_session ON sets(session_id);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise ON sets(exercise_id);
	`
	for _, stmt := range splitStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("cascade rebuild: %w", err)
		}
	}

	return tx.Commit()
}

// setsSessionCascade reports whether the sets->sessions foreign key carries
// ON DELETE CASCADE.
func (d *DB) setsSessionCascade(ctx context.Context) (bool, error) {
	rows, err := d.db.QueryContext(ctx, `PRAGMA foreign_key_list(sets)`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, seq                   int
			table, from, to           string
			onUpdate, onDelete, match string
		)
		if err := rows.Scan(&id, &seq, &table, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return false, err
		}
		if table == "sessions" {
			return strings.EqualFold(onDelete, "CASCADE"), nil
		}
	}
	return false, rows.Err()
}

// splitStatements breaks a multi-statement script on semicolons so it can run
// statement by statement inside a transaction. Statements here never contain
// literal semicolons.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
