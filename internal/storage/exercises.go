// ABOUTME: Exercise catalog CRUD for SQLite storage.
// ABOUTME: Deleting an exercise leaves historical sets on their snapshots.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// CreateExercise stores a new catalog exercise.
func (d *DB) CreateExercise(ctx context.Context, e *models.Exercise) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO exercises (id, user_id, name, muscle, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID.String(), e.UserID, e.Name, e.Muscle, e.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return classify(fmt.Errorf("create exercise: %w", err))
	}
	return nil
}

// ListExercises retrieves a user's catalog, alphabetical by name.
func (d *DB) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, name, muscle, created_at
		FROM exercises
		WHERE user_id = ?
		ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		var idStr, createdAt string
		if err := rows.Scan(&idStr, &e.UserID, &e.Name, &e.Muscle, &createdAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.ID, _ = uuid.Parse(idStr)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exercises = append(exercises, &e)
	}
	return exercises, rows.Err()
}

// DeleteExercise removes a catalog exercise. Historical session sets keep
// their snapshot name; their exercise_id reference is nulled by the FK.
func (d *DB) DeleteExercise(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM exercises WHERE id = ? AND user_id = ?",
		id.String(), userID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
