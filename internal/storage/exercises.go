package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/meltforce/gigofit/internal/models"
)

// seedExercises bulk-inserts the built-in catalog in one statement, but only
// when the table is completely empty. Never reseeds.
func (d *DB) seedExercises(ctx context.Context) error {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return fmt.Errorf("counting exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `INSERT INTO exercises (name, muscle_group, category) VALUES `
	args := make([]any, 0, len(models.ExerciseSeed)*3)
	valueStrings := make([]string, 0, len(models.ExerciseSeed))

	for _, e := range models.ExerciseSeed {
		valueStrings = append(valueStrings, "(?,?,?)")
		args = append(args, e.Name, string(e.MuscleGroup), string(e.Category))
	}

	query += strings.Join(valueStrings, ",")

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting seed exercises: %w", err)
	}
	d.log.Info("exercise catalog seeded", "count", len(models.ExerciseSeed))
	return nil
}

// GetAllExercises returns the full catalog ordered by muscle group then name.
func (d *DB) GetAllExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, muscle_group, category
		 FROM exercises
		 ORDER BY muscle_group ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetExercisesByMuscleGroup returns the catalog entries for one muscle group.
func (d *DB) GetExercisesByMuscleGroup(ctx context.Context, group models.MuscleGroup) ([]models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, muscle_group, category
		 FROM exercises
		 WHERE muscle_group = ?
		 ORDER BY name ASC`, string(group))
	if err != nil {
		return nil, fmt.Errorf("querying exercises by muscle group: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

func scanExercises(rows *sql.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
