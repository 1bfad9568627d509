// ABOUTME: Workout plan storage with ownership-gated, full-replace updates.
// ABOUTME: The exercise list is always deleted and reinserted atomically, never merged.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// CreatePlan persists a plan header and its ordered exercise list in one
// transaction. OrderIndex is assigned as the dense 0-based input position.
func (d *DB) CreatePlan(ctx context.Context, p *models.WorkoutPlan) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_plans (id, user_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID.String(), p.UserID, p.Name, p.Description, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return classify(fmt.Errorf("insert plan: %w", err))
	}

	if err := insertPlanExercises(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create plan: %w", err)
	}
	return nil
}

// UpdatePlan rewrites a plan's header and replaces its exercise list.
// The header update is conditioned on both id and user_id; when zero rows
// match the transaction rolls back and ErrNotFound is returned without
// distinguishing "absent" from "not yours".
func (d *DB) UpdatePlan(ctx context.Context, p *models.WorkoutPlan) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE workout_plans SET name = ?, description = ?
		WHERE id = ? AND user_id = ?`,
		p.Name, p.Description, p.ID.String(), p.UserID)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	// Replace, not diff: drop the old list wholesale and insert the new one.
	_, err = tx.ExecContext(ctx, "DELETE FROM plan_exercises WHERE plan_id = ?", p.ID.String())
	if err != nil {
		return fmt.Errorf("clear plan exercises: %w", err)
	}
	if err := insertPlanExercises(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update plan: %w", err)
	}
	return nil
}

func insertPlanExercises(ctx context.Context, tx *sql.Tx, p *models.WorkoutPlan) error {
	for i := range p.Exercises {
		pe := &p.Exercises[i]
		pe.OrderIndex = i
		_, err := tx.ExecContext(ctx, `
			INSERT INTO plan_exercises (plan_id, exercise_id, target_sets, order_index)
			VALUES (?, ?, ?, ?)`,
			p.ID.String(), pe.ExerciseID.String(), pe.TargetSets, pe.OrderIndex)
		if err != nil {
			return classify(fmt.Errorf("insert plan exercise %d: %w", i, err))
		}
	}
	return nil
}

// GetPlanWithDetails fetches one plan and its exercise list in order_index
// order.
func (d *DB) GetPlanWithDetails(ctx context.Context, id uuid.UUID) (*models.WorkoutPlan, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM workout_plans
		WHERE id = ?`,
		id.String())

	p, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := d.attachPlanDetails(ctx, []*models.WorkoutPlan{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlansWithDetails fetches all of a user's plans, newest first, each with
// its ordered exercise list resolved in one bulk query.
func (d *DB) ListPlansWithDetails(ctx context.Context, userID string) ([]*models.WorkoutPlan, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM workout_plans
		WHERE user_id = ?
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.WorkoutPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	if err := d.attachPlanDetails(ctx, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// DeletePlan removes a plan and its exercise links (cascade), gated on
// ownership.
func (d *DB) DeletePlan(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM workout_plans WHERE id = ? AND user_id = ?",
		id.String(), userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// attachPlanDetails bulk-fetches plan exercises pre-sorted by order_index and
// groups them by plan. Exactly one row per exercise, so the fetched order is
// kept verbatim.
func (d *DB) attachPlanDetails(ctx context.Context, plans []*models.WorkoutPlan) error {
	if len(plans) == 0 {
		return nil
	}

	byID := make(map[string]*models.WorkoutPlan, len(plans))
	placeholders := make([]string, 0, len(plans))
	args := make([]any, 0, len(plans))
	for _, p := range plans {
		byID[p.ID.String()] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID.String())
	}

	query := fmt.Sprintf(`
		SELECT pe.plan_id, pe.exercise_id, pe.target_sets, pe.order_index, e.name
		FROM plan_exercises pe
		LEFT JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.plan_id IN (%s)
		ORDER BY pe.plan_id, pe.order_index`,
		strings.Join(placeholders, ", "))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list plan exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var planID, exerciseID string
		var name sql.NullString
		var targetSets sql.NullInt64
		var orderIndex int

		if err := rows.Scan(&planID, &exerciseID, &targetSets, &orderIndex, &name); err != nil {
			return fmt.Errorf("scan plan exercise: %w", err)
		}

		p, ok := byID[planID]
		if !ok {
			continue
		}

		pe := models.PlanExercise{OrderIndex: orderIndex}
		pe.ExerciseID, _ = uuid.Parse(exerciseID)
		if name.Valid {
			pe.ExerciseName = name.String
		} else {
			pe.ExerciseName = models.DeletedExerciseName
		}
		if targetSets.Valid {
			v := int(targetSets.Int64)
			pe.TargetSets = &v
		}
		p.Exercises = append(p.Exercises, pe)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("list plan exercises: %w", err)
	}
	return nil
}

func scanPlan(row scanner) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	var idStr, createdAt string
	var description sql.NullString

	err := row.Scan(&idStr, &p.UserID, &p.Name, &description, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if description.Valid {
		p.Description = &description.String
	}
	return &p, nil
}
