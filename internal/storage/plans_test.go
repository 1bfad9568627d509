// ABOUTME: Tests for plan storage: ordering, full-replace updates, ownership.
// ABOUTME: Verifies a failed update leaves the stored plan untouched.
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

func TestCreateAndGetPlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")
	bench := seedExercise(t, db, "alice", "Bench Press", "chest")

	p := models.NewWorkoutPlan("alice", "Lower A")
	p.WithDescription("heavy squat focus")
	p.Exercises = []models.PlanExercise{
		{ExerciseID: squat.ID, TargetSets: intPtr(5)},
		{ExerciseID: bench.ID},
	}

	if err := db.CreatePlan(ctx, p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	got, err := db.GetPlanWithDetails(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlanWithDetails failed: %v", err)
	}
	if got.Name != "Lower A" {
		t.Errorf("Name mismatch: got %s", got.Name)
	}
	if got.Description == nil || *got.Description != "heavy squat focus" {
		t.Errorf("Description mismatch: got %v", got.Description)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("Expected 2 exercises, got %d", len(got.Exercises))
	}
	if got.Exercises[0].ExerciseName != "Squat" || got.Exercises[0].OrderIndex != 0 {
		t.Errorf("Expected Squat at index 0, got %s at %d",
			got.Exercises[0].ExerciseName, got.Exercises[0].OrderIndex)
	}
	if got.Exercises[0].TargetSets == nil || *got.Exercises[0].TargetSets != 5 {
		t.Errorf("TargetSets mismatch: got %v", got.Exercises[0].TargetSets)
	}
	if got.Exercises[1].TargetSets != nil {
		t.Errorf("Expected nil TargetSets for Bench, got %v", got.Exercises[1].TargetSets)
	}
}

func TestUpdatePlanReplacesExercises(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")
	bench := seedExercise(t, db, "alice", "Bench Press", "chest")
	row := seedExercise(t, db, "alice", "Barbell Row", "back")

	p := models.NewWorkoutPlan("alice", "Full body")
	p.Exercises = []models.PlanExercise{
		{ExerciseID: squat.ID},
		{ExerciseID: bench.ID},
	}
	if err := db.CreatePlan(ctx, p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	// Submit list B: the old list must vanish entirely, not merge
	updated := models.NewWorkoutPlan("alice", "Full body v2")
	updated.ID = p.ID
	updated.Exercises = []models.PlanExercise{
		{ExerciseID: row.ID, TargetSets: intPtr(3)},
	}
	if err := db.UpdatePlan(ctx, updated); err != nil {
		t.Fatalf("UpdatePlan failed: %v", err)
	}

	got, err := db.GetPlanWithDetails(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlanWithDetails failed: %v", err)
	}
	if got.Name != "Full body v2" {
		t.Errorf("Name mismatch: got %s", got.Name)
	}
	if len(got.Exercises) != 1 {
		t.Fatalf("Expected 1 exercise after replace, got %d", len(got.Exercises))
	}
	if got.Exercises[0].ExerciseName != "Barbell Row" {
		t.Errorf("Expected Barbell Row, got %s", got.Exercises[0].ExerciseName)
	}
}

func TestUpdatePlanOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")

	p := models.NewWorkoutPlan("alice", "Lower A")
	p.Exercises = []models.PlanExercise{{ExerciseID: squat.ID}}
	if err := db.CreatePlan(ctx, p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	evil := models.NewWorkoutPlan("bob", "Stolen")
	evil.ID = p.ID
	evil.Exercises = []models.PlanExercise{{ExerciseID: squat.ID}}
	if err := db.UpdatePlan(ctx, evil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for other user, got %v", err)
	}

	// The denied update must have rolled back without touching the plan
	got, err := db.GetPlanWithDetails(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlanWithDetails failed: %v", err)
	}
	if got.Name != "Lower A" {
		t.Errorf("Plan changed by denied update: %s", got.Name)
	}
	if len(got.Exercises) != 1 {
		t.Errorf("Exercise list changed by denied update: %d entries", len(got.Exercises))
	}

	missing := models.NewWorkoutPlan("alice", "Ghost")
	missing.ID = uuid.New()
	missing.Exercises = []models.PlanExercise{{ExerciseID: squat.ID}}
	if err := db.UpdatePlan(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing plan, got %v", err)
	}
}

func TestListAndDeletePlans(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")

	p := models.NewWorkoutPlan("alice", "Lower A")
	p.Exercises = []models.PlanExercise{{ExerciseID: squat.ID}}
	if err := db.CreatePlan(ctx, p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	plans, err := db.ListPlansWithDetails(ctx, "alice")
	if err != nil {
		t.Fatalf("ListPlansWithDetails failed: %v", err)
	}
	if len(plans) != 1 || len(plans[0].Exercises) != 1 {
		t.Fatalf("Expected 1 plan with 1 exercise, got %d plans", len(plans))
	}

	// Other users see nothing
	other, err := db.ListPlansWithDetails(ctx, "bob")
	if err != nil {
		t.Fatalf("ListPlansWithDetails failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no plans for bob, got %d", len(other))
	}

	if err := db.DeletePlan(ctx, p.ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for other user, got %v", err)
	}
	if err := db.DeletePlan(ctx, p.ID, "alice"); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}

	var count int
	r := db.db.QueryRow("SELECT COUNT(*) FROM plan_exercises WHERE plan_id = ?", p.ID.String())
	if err := r.Scan(&count); err != nil {
		t.Fatalf("count plan exercises: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 plan exercise rows after delete, got %d", count)
	}
}

func TestPlanEntryCascadesWithExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")
	bench := seedExercise(t, db, "alice", "Bench Press", "chest")

	p := models.NewWorkoutPlan("alice", "Lower A")
	p.Exercises = []models.PlanExercise{
		{ExerciseID: squat.ID},
		{ExerciseID: bench.ID},
	}
	if err := db.CreatePlan(ctx, p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	// Plan links cascade with the exercise; the bench entry disappears
	if err := db.DeleteExercise(ctx, bench.ID, "alice"); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}

	got, err := db.GetPlanWithDetails(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlanWithDetails failed: %v", err)
	}
	if len(got.Exercises) != 1 {
		t.Fatalf("Expected 1 exercise after cascade, got %d", len(got.Exercises))
	}
	if got.Exercises[0].ExerciseName != "Squat" {
		t.Errorf("Expected Squat to remain, got %s", got.Exercises[0].ExerciseName)
	}
}
