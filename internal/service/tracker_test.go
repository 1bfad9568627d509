// ABOUTME: Tests for Tracker validation and orchestration over SQLite storage.
// ABOUTME: Invalid requests must be rejected before any row is written.
package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/storage"
)

func setupTracker(t *testing.T) (*Tracker, *storage.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, nil), db
}

func TestLogSessionHappyPath(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	e, err := tracker.AddExercise(ctx, "alice", "Squat", "legs")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	reps := 8
	weight := 100.0
	s, err := tracker.LogSession(ctx, "alice", &LogSessionRequest{
		Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Name: "Leg day",
		Exercises: []SessionExerciseRequest{
			{
				ExerciseID: e.ID.String(),
				Sets: []SetRequest{
					{Reps: &reps, Weight: &weight, Unit: "kg"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}
	if s.TotalSets() != 1 {
		t.Errorf("TotalSets = %d, want 1", s.TotalSets())
	}
	// Snapshot fields come from the catalog, not the request
	if s.Exercises[0].ExerciseName != "Squat" || s.Exercises[0].Muscle != "legs" {
		t.Errorf("Snapshot mismatch: %+v", s.Exercises[0])
	}

	got, err := tracker.Session(ctx, "alice", s.ID)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got.Name == nil || *got.Name != "Leg day" {
		t.Errorf("Name mismatch: %v", got.Name)
	}
}

func TestLogSessionRejectsExerciseWithoutSets(t *testing.T) {
	tracker, db := setupTracker(t)
	ctx := context.Background()

	e, err := tracker.AddExercise(ctx, "alice", "Squat", "legs")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	_, err = tracker.LogSession(ctx, "alice", &LogSessionRequest{
		Date: time.Now(),
		Exercises: []SessionExerciseRequest{
			{ExerciseID: e.ID.String(), Sets: nil},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}

	// Rejection happens before any write
	sessions, err := db.ListSessionsWithDetails(ctx, "alice", nil, nil)
	if err != nil {
		t.Fatalf("ListSessionsWithDetails failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Rejected session was persisted: %d sessions", len(sessions))
	}
}

func TestLogSessionRejectsUnknownExercise(t *testing.T) {
	tracker, db := setupTracker(t)
	ctx := context.Background()

	reps := 5
	_, err := tracker.LogSession(ctx, "alice", &LogSessionRequest{
		Date: time.Now(),
		Exercises: []SessionExerciseRequest{
			{ExerciseID: uuid.NewString(), Sets: []SetRequest{{Reps: &reps}}},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for unknown exercise, got %v", err)
	}

	sessions, err := db.ListSessionsWithDetails(ctx, "alice", nil, nil)
	if err != nil {
		t.Fatalf("ListSessionsWithDetails failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Rejected session was persisted: %d sessions", len(sessions))
	}
}

func TestLogSessionAllowsBareHeader(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	s, err := tracker.LogSession(ctx, "alice", &LogSessionRequest{
		Date: time.Now(),
		Name: "Morning run",
	})
	if err != nil {
		t.Fatalf("LogSession with no exercises failed: %v", err)
	}
	if len(s.Exercises) != 0 {
		t.Errorf("Expected no exercises, got %d", len(s.Exercises))
	}
}

func TestCreatePlanRejectsEmptyList(t *testing.T) {
	tracker, db := setupTracker(t)
	ctx := context.Background()

	_, err := tracker.CreatePlan(ctx, "alice", &SavePlanRequest{Name: "Empty"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for empty plan, got %v", err)
	}

	plans, err := db.ListPlansWithDetails(ctx, "alice")
	if err != nil {
		t.Fatalf("ListPlansWithDetails failed: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("Rejected plan was persisted: %d plans", len(plans))
	}
}

func TestUpdatePlanForOtherUserIsNotFound(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	e, err := tracker.AddExercise(ctx, "alice", "Squat", "legs")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	p, err := tracker.CreatePlan(ctx, "alice", &SavePlanRequest{
		Name:      "Lower A",
		Exercises: []PlanExerciseRequest{{ExerciseID: e.ID.String()}},
	})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	// Bob has no exercises, so give his request alice's; storage still gates
	_, err = tracker.UpdatePlan(ctx, "bob", p.ID, &SavePlanRequest{
		Name:      "Hijacked",
		Exercises: []PlanExerciseRequest{{ExerciseID: e.ID.String()}},
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLogWeightRejectsNonPositive(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	if _, err := tracker.LogWeight(ctx, "alice", time.Now(), 0, "kg"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero weight, got %v", err)
	}
	if _, err := tracker.LogWeight(ctx, "alice", time.Now(), -5, "kg"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative weight, got %v", err)
	}
}

func TestLogMealRejectsNegativeMacros(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	_, err := tracker.LogMeal(ctx, "alice", &MealRequest{
		Date:     time.Now(),
		Name:     "Bad entry",
		Calories: -100,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative calories, got %v", err)
	}
}

func TestSetGoalsValidation(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	_, err := tracker.SetGoals(ctx, "alice", &GoalsRequest{
		CalorieGoal: 2200, ProteinGoal: 160, CarbGoal: 250, FatGoal: 70,
		StepGoal: 0, WaterGoal: 2500,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero step goal, got %v", err)
	}

	g, err := tracker.SetGoals(ctx, "alice", &GoalsRequest{
		CalorieGoal: 2200, ProteinGoal: 160, CarbGoal: 250, FatGoal: 70,
		StepGoal: 12000, WaterGoal: 2500,
	})
	if err != nil {
		t.Fatalf("SetGoals failed: %v", err)
	}
	if g.CalorieGoal != 2200 {
		t.Errorf("CalorieGoal = %.0f, want 2200", g.CalorieGoal)
	}
}

func TestAdjustStepsThroughService(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cl, err := tracker.AdjustSteps(ctx, "alice", day, 2500)
	if err != nil {
		t.Fatalf("AdjustSteps failed: %v", err)
	}
	if cl.Amount != 2500 {
		t.Errorf("Amount = %d, want 2500", cl.Amount)
	}

	cl, err = tracker.AdjustWater(ctx, "alice", day, -300)
	if err != nil {
		t.Fatalf("AdjustWater failed: %v", err)
	}
	if cl.Amount != 0 {
		t.Errorf("Water = %d, want 0 after clamped negative", cl.Amount)
	}
}
