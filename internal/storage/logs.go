// ABOUTME: Weight and meal log storage plus per-user goal targets.
// ABOUTME: Interactive lists are newest first; export reads them ascending.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// CreateWeightLog stores a new bodyweight entry.
func (d *DB) CreateWeightLog(ctx context.Context, w *models.WeightLog) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO weight_logs (id, user_id, log_date, weight, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID.String(), w.UserID, w.LogDate.Format(dateLayout), w.Weight, w.Unit,
		w.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return classify(fmt.Errorf("create weight log: %w", err))
	}
	return nil
}

// ListWeightLogs retrieves weight entries newest first.
func (d *DB) ListWeightLogs(ctx context.Context, userID string, limit int) ([]*models.WeightLog, error) {
	query := `
		SELECT id, user_id, log_date, weight, unit, created_at
		FROM weight_logs
		WHERE user_id = ?
		ORDER BY log_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WeightLog
	for rows.Next() {
		w, err := scanWeightLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// CreateMealLog stores a new meal entry.
func (d *DB) CreateMealLog(ctx context.Context, m *models.MealLog) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO meal_logs (id, user_id, log_date, name, calories, protein, carbs, fat, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID.String(), m.UserID, m.LogDate.Format(dateLayout), m.Name,
		m.Calories, m.Protein, m.Carbs, m.Fat, m.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return classify(fmt.Errorf("create meal log: %w", err))
	}
	return nil
}

// ListMealLogs retrieves meal entries newest first.
func (d *DB) ListMealLogs(ctx context.Context, userID string, limit int) ([]*models.MealLog, error) {
	query := `
		SELECT id, user_id, log_date, name, calories, protein, carbs, fat, created_at
		FROM meal_logs
		WHERE user_id = ?
		ORDER BY log_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.MealLog
	for rows.Next() {
		m, err := scanMealLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, m)
	}
	return logs, rows.Err()
}

// SetGoals upserts a user's daily targets.
func (d *DB) SetGoals(ctx context.Context, g *models.Goals) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_goals (user_id, calorie_goal, protein_goal, carb_goal, fat_goal, step_goal, water_goal)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			calorie_goal = excluded.calorie_goal,
			protein_goal = excluded.protein_goal,
			carb_goal = excluded.carb_goal,
			fat_goal = excluded.fat_goal,
			step_goal = excluded.step_goal,
			water_goal = excluded.water_goal`,
		g.UserID, g.CalorieGoal, g.ProteinGoal, g.CarbGoal, g.FatGoal, g.StepGoal, g.WaterGoal)
	if err != nil {
		return fmt.Errorf("set goals: %w", err)
	}
	return nil
}

// GetGoals retrieves a user's targets, falling back to defaults when unset.
func (d *DB) GetGoals(ctx context.Context, userID string) (*models.Goals, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT user_id, calorie_goal, protein_goal, carb_goal, fat_goal, step_goal, water_goal
		FROM user_goals
		WHERE user_id = ?`,
		userID)

	var g models.Goals
	err := row.Scan(&g.UserID, &g.CalorieGoal, &g.ProteinGoal, &g.CarbGoal,
		&g.FatGoal, &g.StepGoal, &g.WaterGoal)
	if err == sql.ErrNoRows {
		return models.DefaultGoals(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	return &g, nil
}

func scanWeightLog(rows *sql.Rows) (*models.WeightLog, error) {
	var w models.WeightLog
	var idStr, logDate, createdAt string
	if err := rows.Scan(&idStr, &w.UserID, &logDate, &w.Weight, &w.Unit, &createdAt); err != nil {
		return nil, fmt.Errorf("scan weight log: %w", err)
	}
	w.ID, _ = uuid.Parse(idStr)
	w.LogDate, _ = time.Parse(dateLayout, logDate)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &w, nil
}

func scanMealLog(rows *sql.Rows) (*models.MealLog, error) {
	var m models.MealLog
	var idStr, logDate, createdAt string
	if err := rows.Scan(&idStr, &m.UserID, &logDate, &m.Name,
		&m.Calories, &m.Protein, &m.Carbs, &m.Fat, &createdAt); err != nil {
		return nil, fmt.Errorf("scan meal log: %w", err)
	}
	m.ID, _ = uuid.Parse(idStr)
	m.LogDate, _ = time.Parse(dateLayout, logDate)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &m, nil
}
