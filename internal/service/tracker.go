// ABOUTME: Tracker service: validation, snapshot resolution, and orchestration.
// ABOUTME: Thin layer between callers (CLI, MCP) and the storage Repository.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
	"go.uber.org/zap"
)

var validate = validator.New()

// ErrInvalidInput marks requests rejected before any state change.
var ErrInvalidInput = errors.New("invalid input")

// Tracker exposes the tracker operations to caller surfaces. The principal
// (userID) arrives verified from outside; the service only scopes by it.
type Tracker struct {
	repo   storage.Repository
	logger *zap.SugaredLogger
}

// New creates a Tracker over the given repository.
func New(repo storage.Repository, logger *zap.SugaredLogger) *Tracker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Tracker{repo: repo, logger: logger}
}

// LogSession validates and persists a nested workout session. Exercise
// name/muscle are snapshotted from the caller's catalog at write time so the
// session survives later catalog deletes.
func (t *Tracker) LogSession(ctx context.Context, userID string, req *LogSessionRequest) (*models.WorkoutSession, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	catalog, err := t.exerciseIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := models.NewWorkoutSession(userID, req.Date)
	if req.Name != "" {
		s.WithName(req.Name)
	}
	if req.Notes != "" {
		s.WithNotes(req.Notes)
	}
	if req.DurationSeconds > 0 {
		s.WithDuration(req.DurationSeconds)
	}

	for _, exReq := range req.Exercises {
		id, _ := uuid.Parse(exReq.ExerciseID)
		def, ok := catalog[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown exercise %s", ErrInvalidInput, exReq.ExerciseID)
		}
		exID := id
		ex := models.SessionExercise{
			ExerciseID:   &exID,
			ExerciseName: def.Name,
			Muscle:       def.Muscle,
		}
		for _, setReq := range exReq.Sets {
			set := models.SetEntry{Reps: setReq.Reps, Weight: setReq.Weight}
			if setReq.Unit != "" {
				u := setReq.Unit
				set.Unit = &u
			}
			ex.Sets = append(ex.Sets, set)
		}
		s.Exercises = append(s.Exercises, ex)
	}

	if err := t.repo.CreateSession(ctx, s); err != nil {
		return nil, err
	}
	t.logger.Infow("logged workout session", "user", userID, "session", s.ID, "sets", s.TotalSets())
	return s, nil
}

// Sessions returns the user's sessions with details, optionally bounded by
// an inclusive date range.
func (t *Tracker) Sessions(ctx context.Context, userID string, from, to *time.Time) ([]*models.WorkoutSession, error) {
	return t.repo.ListSessionsWithDetails(ctx, userID, from, to)
}

// Session returns one session with details, gated on ownership.
func (t *Tracker) Session(ctx context.Context, userID string, id uuid.UUID) (*models.WorkoutSession, error) {
	return t.repo.GetSessionWithDetails(ctx, id, userID)
}

// DeleteSession removes a session and its sets, gated on ownership.
func (t *Tracker) DeleteSession(ctx context.Context, userID string, id uuid.UUID) error {
	if err := t.repo.DeleteSession(ctx, id, userID); err != nil {
		return err
	}
	t.logger.Infow("deleted workout session", "user", userID, "session", id)
	return nil
}

// CreatePlan validates and persists a new plan with its ordered exercises.
func (t *Tracker) CreatePlan(ctx context.Context, userID string, req *SavePlanRequest) (*models.WorkoutPlan, error) {
	p, err := t.buildPlan(userID, req)
	if err != nil {
		return nil, err
	}
	if err := t.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}
	t.logger.Infow("created plan", "user", userID, "plan", p.ID, "exercises", len(p.Exercises))
	return p, nil
}

// UpdatePlan replaces a plan's header and exercise list. Returns
// storage.ErrNotFound when the plan is absent or owned by someone else.
func (t *Tracker) UpdatePlan(ctx context.Context, userID string, planID uuid.UUID, req *SavePlanRequest) (*models.WorkoutPlan, error) {
	p, err := t.buildPlan(userID, req)
	if err != nil {
		return nil, err
	}
	p.ID = planID
	if err := t.repo.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}
	t.logger.Infow("updated plan", "user", userID, "plan", planID, "exercises", len(p.Exercises))
	return p, nil
}

func (t *Tracker) buildPlan(userID string, req *SavePlanRequest) (*models.WorkoutPlan, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p := models.NewWorkoutPlan(userID, req.Name)
	if req.Description != "" {
		p.WithDescription(req.Description)
	}
	for i, exReq := range req.Exercises {
		id, _ := uuid.Parse(exReq.ExerciseID)
		p.Exercises = append(p.Exercises, models.PlanExercise{
			ExerciseID: id,
			TargetSets: exReq.TargetSets,
			OrderIndex: i,
		})
	}
	return p, nil
}

// Plans returns all of the user's plans with details.
func (t *Tracker) Plans(ctx context.Context, userID string) ([]*models.WorkoutPlan, error) {
	return t.repo.ListPlansWithDetails(ctx, userID)
}

// Plan returns one plan with its ordered exercise list, gated on ownership.
func (t *Tracker) Plan(ctx context.Context, userID string, id uuid.UUID) (*models.WorkoutPlan, error) {
	p, err := t.repo.GetPlanWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

// DeletePlan removes a plan, gated on ownership.
func (t *Tracker) DeletePlan(ctx context.Context, userID string, id uuid.UUID) error {
	return t.repo.DeletePlan(ctx, id, userID)
}

// AdjustSteps applies a signed step delta for the given day.
func (t *Tracker) AdjustSteps(ctx context.Context, userID string, day time.Time, delta int) (*models.CounterLog, error) {
	return t.adjustCounter(ctx, userID, day, models.CounterSteps, delta)
}

// AdjustWater applies a signed water (ml) delta for the given day.
func (t *Tracker) AdjustWater(ctx context.Context, userID string, day time.Time, delta int) (*models.CounterLog, error) {
	return t.adjustCounter(ctx, userID, day, models.CounterWater, delta)
}

func (t *Tracker) adjustCounter(ctx context.Context, userID string, day time.Time, ct models.CounterType, delta int) (*models.CounterLog, error) {
	cl, err := t.repo.AdjustCounter(ctx, userID, day, ct, delta)
	if err != nil {
		return nil, err
	}
	if delta != 0 {
		t.logger.Infow("adjusted counter", "user", userID, "type", ct, "delta", delta, "amount", cl.Amount)
	}
	return cl, nil
}

// LogWeight records a bodyweight entry.
func (t *Tracker) LogWeight(ctx context.Context, userID string, day time.Time, weight float64, unit string) (*models.WeightLog, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	w := models.NewWeightLog(userID, day, weight, unit)
	if err := t.repo.CreateWeightLog(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// WeightHistory returns weight entries newest first (export reads ascending).
func (t *Tracker) WeightHistory(ctx context.Context, userID string, limit int) ([]*models.WeightLog, error) {
	return t.repo.ListWeightLogs(ctx, userID, limit)
}

// LogMeal validates and records a meal entry.
func (t *Tracker) LogMeal(ctx context.Context, userID string, req *MealRequest) (*models.MealLog, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m := models.NewMealLog(userID, req.Date, req.Name)
	m.Calories = req.Calories
	m.Protein = req.Protein
	m.Carbs = req.Carbs
	m.Fat = req.Fat
	if err := t.repo.CreateMealLog(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecentActivity returns the unified feed, newest first.
func (t *Tracker) RecentActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityItem, error) {
	return t.repo.RecentActivity(ctx, userID, limit)
}

// TodaySummary returns the day's nutrition/activity totals against goals.
func (t *Tracker) TodaySummary(ctx context.Context, userID string, today time.Time) (*models.DailySummary, error) {
	return t.repo.TodaySummary(ctx, userID, today)
}

// SetGoals validates and stores the user's daily targets.
func (t *Tracker) SetGoals(ctx context.Context, userID string, req *GoalsRequest) (*models.Goals, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	g := &models.Goals{
		UserID:      userID,
		CalorieGoal: req.CalorieGoal,
		ProteinGoal: req.ProteinGoal,
		CarbGoal:    req.CarbGoal,
		FatGoal:     req.FatGoal,
		StepGoal:    req.StepGoal,
		WaterGoal:   req.WaterGoal,
	}
	if err := t.repo.SetGoals(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddExercise adds a catalog exercise.
func (t *Tracker) AddExercise(ctx context.Context, userID, name, muscle string) (*models.Exercise, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name required", ErrInvalidInput)
	}
	e := models.NewExercise(userID, name, muscle)
	if err := t.repo.CreateExercise(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Exercises lists the user's catalog.
func (t *Tracker) Exercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	return t.repo.ListExercises(ctx, userID)
}

// DeleteExercise removes a catalog exercise; historical sessions keep their
// snapshots.
func (t *Tracker) DeleteExercise(ctx context.Context, userID string, id uuid.UUID) error {
	return t.repo.DeleteExercise(ctx, id, userID)
}

// Export assembles the full export document for the user.
func (t *Tracker) Export(ctx context.Context, userID string) (*storage.ExportData, error) {
	return storage.BuildExport(ctx, t.repo, userID)
}

func (t *Tracker) exerciseIndex(ctx context.Context, userID string) (map[uuid.UUID]*models.Exercise, error) {
	list, err := t.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]*models.Exercise, len(list))
	for _, e := range list {
		idx[e.ID] = e
	}
	return idx, nil
}
