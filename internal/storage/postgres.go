// ABOUTME: Postgres implementation of Repository over a pgx connection pool.
// ABOUTME: Same contracts as the SQLite backend; clamping uses GREATEST.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres implements Repository against a Postgres database.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
}

// OpenPostgres connects a pgx pool and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.SugaredLogger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	p := &Postgres{pool: pool, logger: logger}
	if err := p.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize postgres schema: %w", err)
	}
	return p, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		muscle TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS workout_sessions (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_date DATE NOT NULL,
		name TEXT,
		notes TEXT,
		duration_seconds INTEGER,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS session_sets (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
		exercise_id UUID REFERENCES exercises(id) ON DELETE SET NULL,
		exercise_name TEXT NOT NULL,
		muscle TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight DOUBLE PRECISION,
		unit TEXT,
		seq INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS workout_plans (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS plan_exercises (
		plan_id UUID NOT NULL REFERENCES workout_plans(id) ON DELETE CASCADE,
		exercise_id UUID NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		target_sets INTEGER,
		order_index INTEGER NOT NULL,
		PRIMARY KEY (plan_id, order_index)
	);
	CREATE TABLE IF NOT EXISTS counter_logs (
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		counter_type TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0 CHECK (amount >= 0),
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, log_date, counter_type)
	);
	CREATE TABLE IF NOT EXISTS weight_logs (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meal_logs (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		name TEXT NOT NULL,
		calories DOUBLE PRECISION NOT NULL DEFAULT 0,
		protein DOUBLE PRECISION NOT NULL DEFAULT 0,
		carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
		fat DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS user_goals (
		user_id TEXT PRIMARY KEY,
		calorie_goal DOUBLE PRECISION NOT NULL,
		protein_goal DOUBLE PRECISION NOT NULL,
		carb_goal DOUBLE PRECISION NOT NULL,
		fat_goal DOUBLE PRECISION NOT NULL,
		step_goal INTEGER NOT NULL,
		water_goal INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON workout_sessions(user_id, session_date DESC, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_session_sets_session ON session_sets(session_id, seq);
	CREATE INDEX IF NOT EXISTS idx_meal_logs_user_date ON meal_logs(user_id, log_date);
	`
	_, err := p.pool.Exec(ctx, schema)
	return err
}

// classifyPg maps pgx errors onto the shared sentinels.
func classifyPg(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// --- Exercise catalog ---

func (p *Postgres) CreateExercise(ctx context.Context, e *models.Exercise) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO exercises (id, user_id, name, muscle, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.UserID, e.Name, e.Muscle, e.CreatedAt)
	if err != nil {
		p.logger.Errorw("create exercise failed", "error", err)
		return classifyPg(fmt.Errorf("create exercise: %w", err))
	}
	return nil
}

func (p *Postgres) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, name, muscle, created_at
		FROM exercises WHERE user_id = $1 ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Muscle, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, &e)
	}
	return exercises, rows.Err()
}

func (p *Postgres) DeleteExercise(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := p.pool.Exec(ctx,
		"DELETE FROM exercises WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Workout sessions ---

func (p *Postgres) CreateSession(ctx context.Context, s *models.WorkoutSession) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO workout_sessions (id, user_id, session_date, name, notes, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.SessionDate, s.Name, s.Notes, s.DurationSeconds, s.CreatedAt)
	if err != nil {
		p.logger.Errorw("insert session failed", "error", err)
		return classifyPg(fmt.Errorf("insert session: %w", err))
	}

	seq := 0
	for ei := range s.Exercises {
		ex := &s.Exercises[ei]
		for si := range ex.Sets {
			set := &ex.Sets[si]
			set.SetNumber = si + 1
			_, err = tx.Exec(ctx, `
				INSERT INTO session_sets (id, session_id, exercise_id, exercise_name, muscle, set_number, reps, weight, unit, seq)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				uuid.New(), s.ID, ex.ExerciseID, ex.ExerciseName, ex.Muscle,
				set.SetNumber, set.Reps, set.Weight, set.Unit, seq)
			if err != nil {
				return classifyPg(fmt.Errorf("insert set %d of exercise %d: %w", set.SetNumber, ei, err))
			}
			seq++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create session: %w", err)
	}
	return nil
}

func (p *Postgres) GetSessionWithDetails(ctx context.Context, id uuid.UUID, userID string) (*models.WorkoutSession, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, user_id, session_date, name, notes, duration_seconds, created_at
		FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		id, userID)

	var s models.WorkoutSession
	err := row.Scan(&s.ID, &s.UserID, &s.SessionDate, &s.Name, &s.Notes, &s.DurationSeconds, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if err := p.attachSessionDetails(ctx, []*models.WorkoutSession{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) ListSessionsWithDetails(ctx context.Context, userID string, from, to *time.Time) ([]*models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, session_date, name, notes, duration_seconds, created_at
		FROM workout_sessions WHERE user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += " AND session_date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND session_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY session_date DESC, created_at DESC"

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.WorkoutSession
	for rows.Next() {
		var s models.WorkoutSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.SessionDate, &s.Name, &s.Notes, &s.DurationSeconds, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	if err := p.attachSessionDetails(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (p *Postgres) attachSessionDetails(ctx context.Context, sessions []*models.WorkoutSession) error {
	if len(sessions) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.WorkoutSession, len(sessions))
	ids := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT ss.session_id, ss.exercise_id, ss.exercise_name, ss.muscle,
		       ss.set_number, ss.reps, ss.weight, ss.unit, e.name, e.muscle
		FROM session_sets ss
		LEFT JOIN exercises e ON e.id = ss.exercise_id
		WHERE ss.session_id = ANY($1)
		ORDER BY ss.session_id, ss.seq`,
		ids)
	if err != nil {
		return fmt.Errorf("list session sets: %w", err)
	}
	defer rows.Close()

	groupIdx := make(map[string]int)
	orphan := 0

	for rows.Next() {
		var sessionID uuid.UUID
		var exerciseID *uuid.UUID
		var snapName, snapMuscle string
		var liveName, liveMuscle, unit *string
		var setNumber int
		var reps *int
		var weight *float64

		err := rows.Scan(&sessionID, &exerciseID, &snapName, &snapMuscle,
			&setNumber, &reps, &weight, &unit, &liveName, &liveMuscle)
		if err != nil {
			return fmt.Errorf("scan session set: %w", err)
		}

		s, ok := byID[sessionID]
		if !ok {
			continue
		}

		var groupKey string
		if exerciseID != nil {
			groupKey = exerciseID.String()
		} else {
			groupKey = "orphan:" + strconv.Itoa(orphan)
			orphan++
		}

		key := sessionID.String() + "/" + groupKey
		idx, ok := groupIdx[key]
		if !ok {
			ex := models.SessionExercise{
				ExerciseID:   exerciseID,
				ExerciseName: pickName(liveName, snapName),
				Muscle:       pickMuscle(liveMuscle, snapMuscle),
			}
			s.Exercises = append(s.Exercises, ex)
			idx = len(s.Exercises) - 1
			groupIdx[key] = idx
		}

		s.Exercises[idx].Sets = append(s.Exercises[idx].Sets, models.SetEntry{
			SetNumber: setNumber,
			Reps:      reps,
			Weight:    weight,
			Unit:      unit,
		})
	}
	return rows.Err()
}

func pickName(live *string, snapshot string) string {
	if live != nil && *live != "" {
		return *live
	}
	if snapshot != "" {
		return snapshot
	}
	return models.DeletedExerciseName
}

func pickMuscle(live *string, snapshot string) string {
	if live != nil && *live != "" {
		return *live
	}
	return snapshot
}

func (p *Postgres) DeleteSession(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := p.pool.Exec(ctx,
		"DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Workout plans ---

func (p *Postgres) CreatePlan(ctx context.Context, plan *models.WorkoutPlan) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create plan: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO workout_plans (id, user_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		plan.ID, plan.UserID, plan.Name, plan.Description, plan.CreatedAt)
	if err != nil {
		return classifyPg(fmt.Errorf("insert plan: %w", err))
	}

	if err := insertPlanExercisesPg(ctx, tx, plan); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create plan: %w", err)
	}
	return nil
}

func (p *Postgres) UpdatePlan(ctx context.Context, plan *models.WorkoutPlan) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update plan: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE workout_plans SET name = $1, description = $2
		WHERE id = $3 AND user_id = $4`,
		plan.Name, plan.Description, plan.ID, plan.UserID)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx, "DELETE FROM plan_exercises WHERE plan_id = $1", plan.ID)
	if err != nil {
		return fmt.Errorf("clear plan exercises: %w", err)
	}
	if err := insertPlanExercisesPg(ctx, tx, plan); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update plan: %w", err)
	}
	return nil
}

func insertPlanExercisesPg(ctx context.Context, tx pgx.Tx, plan *models.WorkoutPlan) error {
	for i := range plan.Exercises {
		pe := &plan.Exercises[i]
		pe.OrderIndex = i
		_, err := tx.Exec(ctx, `
			INSERT INTO plan_exercises (plan_id, exercise_id, target_sets, order_index)
			VALUES ($1, $2, $3, $4)`,
			plan.ID, pe.ExerciseID, pe.TargetSets, pe.OrderIndex)
		if err != nil {
			return classifyPg(fmt.Errorf("insert plan exercise %d: %w", i, err))
		}
	}
	return nil
}

func (p *Postgres) GetPlanWithDetails(ctx context.Context, id uuid.UUID) (*models.WorkoutPlan, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM workout_plans WHERE id = $1`, id)

	var plan models.WorkoutPlan
	err := row.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.Description, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	if err := p.attachPlanDetails(ctx, []*models.WorkoutPlan{&plan}); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *Postgres) ListPlansWithDetails(ctx context.Context, userID string) ([]*models.WorkoutPlan, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM workout_plans WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.WorkoutPlan
	for rows.Next() {
		var plan models.WorkoutPlan
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.Description, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	if err := p.attachPlanDetails(ctx, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (p *Postgres) attachPlanDetails(ctx context.Context, plans []*models.WorkoutPlan) error {
	if len(plans) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.WorkoutPlan, len(plans))
	ids := make([]uuid.UUID, 0, len(plans))
	for _, plan := range plans {
		byID[plan.ID] = plan
		ids = append(ids, plan.ID)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT pe.plan_id, pe.exercise_id, pe.target_sets, pe.order_index, e.name
		FROM plan_exercises pe
		LEFT JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.plan_id = ANY($1)
		ORDER BY pe.plan_id, pe.order_index`,
		ids)
	if err != nil {
		return fmt.Errorf("list plan exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var planID uuid.UUID
		var pe models.PlanExercise
		var name *string
		if err := rows.Scan(&planID, &pe.ExerciseID, &pe.TargetSets, &pe.OrderIndex, &name); err != nil {
			return fmt.Errorf("scan plan exercise: %w", err)
		}
		plan, ok := byID[planID]
		if !ok {
			continue
		}
		if name != nil {
			pe.ExerciseName = *name
		} else {
			pe.ExerciseName = models.DeletedExerciseName
		}
		plan.Exercises = append(plan.Exercises, pe)
	}
	return rows.Err()
}

func (p *Postgres) DeletePlan(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := p.pool.Exec(ctx,
		"DELETE FROM workout_plans WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Counters ---

func (p *Postgres) AdjustCounter(ctx context.Context, userID string, day time.Time, ct models.CounterType, delta int) (*models.CounterLog, error) {
	if delta != 0 {
		_, err := p.pool.Exec(ctx, `
			INSERT INTO counter_logs (user_id, log_date, counter_type, amount, updated_at)
			VALUES ($1, $2, $3, GREATEST(0, $4), NOW())
			ON CONFLICT (user_id, log_date, counter_type)
			DO UPDATE SET amount = GREATEST(0, counter_logs.amount + $4), updated_at = NOW()`,
			userID, day, string(ct), delta)
		if err != nil {
			p.logger.Errorw("adjust counter failed", "type", ct, "error", err)
			return nil, classifyPg(fmt.Errorf("adjust %s counter: %w", ct, err))
		}
	}

	row := p.pool.QueryRow(ctx, `
		SELECT amount, updated_at FROM counter_logs
		WHERE user_id = $1 AND log_date = $2 AND counter_type = $3`,
		userID, day, string(ct))

	cl := &models.CounterLog{UserID: userID, LogDate: day, CounterType: ct}
	err := row.Scan(&cl.Amount, &cl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s counter: %w", ct, err)
	}
	return cl, nil
}

// --- Weight and meal logs ---

func (p *Postgres) CreateWeightLog(ctx context.Context, w *models.WeightLog) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO weight_logs (id, user_id, log_date, weight, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.UserID, w.LogDate, w.Weight, w.Unit, w.CreatedAt)
	if err != nil {
		return classifyPg(fmt.Errorf("create weight log: %w", err))
	}
	return nil
}

func (p *Postgres) ListWeightLogs(ctx context.Context, userID string, limit int) ([]*models.WeightLog, error) {
	query := `
		SELECT id, user_id, log_date, weight, unit, created_at
		FROM weight_logs WHERE user_id = $1
		ORDER BY log_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WeightLog
	for rows.Next() {
		var w models.WeightLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.LogDate, &w.Weight, &w.Unit, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan weight log: %w", err)
		}
		logs = append(logs, &w)
	}
	return logs, rows.Err()
}

func (p *Postgres) CreateMealLog(ctx context.Context, m *models.MealLog) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO meal_logs (id, user_id, log_date, name, calories, protein, carbs, fat, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.UserID, m.LogDate, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.CreatedAt)
	if err != nil {
		return classifyPg(fmt.Errorf("create meal log: %w", err))
	}
	return nil
}

func (p *Postgres) ListMealLogs(ctx context.Context, userID string, limit int) ([]*models.MealLog, error) {
	query := `
		SELECT id, user_id, log_date, name, calories, protein, carbs, fat, created_at
		FROM meal_logs WHERE user_id = $1
		ORDER BY log_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.MealLog
	for rows.Next() {
		var m models.MealLog
		if err := rows.Scan(&m.ID, &m.UserID, &m.LogDate, &m.Name,
			&m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		logs = append(logs, &m)
	}
	return logs, rows.Err()
}

// --- Aggregation ---

func (p *Postgres) RecentActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityItem, error) {
	return mergeRecentActivity(ctx, p, userID, limit)
}

func (p *Postgres) TodaySummary(ctx context.Context, userID string, today time.Time) (*models.DailySummary, error) {
	summary := &models.DailySummary{Date: today}

	row := p.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0),
		       COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0)
		FROM meal_logs WHERE user_id = $1 AND log_date = $2`,
		userID, today)
	if err := row.Scan(&summary.Calories, &summary.Protein, &summary.Carbs, &summary.Fat); err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}

	steps, err := p.AdjustCounter(ctx, userID, today, models.CounterSteps, 0)
	if err != nil {
		return nil, err
	}
	summary.Steps = steps.Amount

	water, err := p.AdjustCounter(ctx, userID, today, models.CounterWater, 0)
	if err != nil {
		return nil, err
	}
	summary.Water = water.Amount

	goals, err := p.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.Goals = goals
	return summary, nil
}

// --- Goals ---

func (p *Postgres) SetGoals(ctx context.Context, g *models.Goals) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO user_goals (user_id, calorie_goal, protein_goal, carb_goal, fat_goal, step_goal, water_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			calorie_goal = EXCLUDED.calorie_goal,
			protein_goal = EXCLUDED.protein_goal,
			carb_goal = EXCLUDED.carb_goal,
			fat_goal = EXCLUDED.fat_goal,
			step_goal = EXCLUDED.step_goal,
			water_goal = EXCLUDED.water_goal`,
		g.UserID, g.CalorieGoal, g.ProteinGoal, g.CarbGoal, g.FatGoal, g.StepGoal, g.WaterGoal)
	if err != nil {
		return fmt.Errorf("set goals: %w", err)
	}
	return nil
}

func (p *Postgres) GetGoals(ctx context.Context, userID string) (*models.Goals, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT user_id, calorie_goal, protein_goal, carb_goal, fat_goal, step_goal, water_goal
		FROM user_goals WHERE user_id = $1`, userID)

	var g models.Goals
	err := row.Scan(&g.UserID, &g.CalorieGoal, &g.ProteinGoal, &g.CarbGoal,
		&g.FatGoal, &g.StepGoal, &g.WaterGoal)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultGoals(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	return &g, nil
}

// --- Export ---

func (p *Postgres) ExportSessionRows(ctx context.Context, userID string) ([]*SessionExportRow, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT ws.id, ws.session_date, ws.name, ws.notes, ws.duration_seconds,
		       COALESCE(e.name, ss.exercise_name), ss.set_number, ss.reps, ss.weight, ss.unit
		FROM workout_sessions ws
		LEFT JOIN session_sets ss ON ss.session_id = ws.id
		LEFT JOIN exercises e ON e.id = ss.exercise_id
		WHERE ws.user_id = $1
		ORDER BY ws.session_date ASC, ws.created_at ASC, ss.seq ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	defer rows.Close()

	var out []*SessionExportRow
	for rows.Next() {
		var r SessionExportRow
		var id uuid.UUID
		err := rows.Scan(&id, &r.SessionDate, &r.SessionName, &r.Notes, &r.DurationSeconds,
			&r.ExerciseName, &r.SetNumber, &r.Reps, &r.Weight, &r.Unit)
		if err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		r.SessionID = id.String()
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (p *Postgres) ExportWeightRows(ctx context.Context, userID string) ([]*WeightExportRow, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT log_date, weight, unit, created_at
		FROM weight_logs WHERE user_id = $1
		ORDER BY log_date ASC, created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	defer rows.Close()

	var out []*WeightExportRow
	for rows.Next() {
		var r WeightExportRow
		if err := rows.Scan(&r.LogDate, &r.Weight, &r.Unit, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan weight export row: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
