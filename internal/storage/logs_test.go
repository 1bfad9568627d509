// ABOUTME: Tests for weight/meal log storage and goal upserts.
// ABOUTME: Interactive lists read newest first with an optional limit.
package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

func TestWeightLogsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, day := range days {
		w := models.NewWeightLog("alice", day, 80+float64(i), "kg")
		if err := db.CreateWeightLog(ctx, w); err != nil {
			t.Fatalf("CreateWeightLog failed: %v", err)
		}
	}

	logs, err := db.ListWeightLogs(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListWeightLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs, got %d", len(logs))
	}
	if !logs[0].LogDate.Equal(days[1]) {
		t.Errorf("Expected 2025-03-03 first, got %v", logs[0].LogDate)
	}

	limited, err := db.ListWeightLogs(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("ListWeightLogs with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 logs with limit, got %d", len(limited))
	}
}

func TestMealLogsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := models.NewMealLog("alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "Chicken bowl")
	m.Calories = 650
	m.Protein = 45
	m.Carbs = 70
	m.Fat = 18
	if err := db.CreateMealLog(ctx, m); err != nil {
		t.Fatalf("CreateMealLog failed: %v", err)
	}

	logs, err := db.ListMealLogs(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListMealLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(logs))
	}
	got := logs[0]
	if got.Name != "Chicken bowl" || got.Calories != 650 || got.Protein != 45 {
		t.Errorf("Meal mismatch: %+v", got)
	}
}

func TestGoalsUpsertAndDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Unset goals come back as defaults, not an error
	g, err := db.GetGoals(ctx, "alice")
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if g.CalorieGoal != models.DefaultGoals("alice").CalorieGoal {
		t.Errorf("Expected default calorie goal, got %.0f", g.CalorieGoal)
	}

	set := &models.Goals{UserID: "alice", CalorieGoal: 2200, ProteinGoal: 160,
		CarbGoal: 250, FatGoal: 70, StepGoal: 12000, WaterGoal: 2500}
	if err := db.SetGoals(ctx, set); err != nil {
		t.Fatalf("SetGoals failed: %v", err)
	}

	// Second set replaces, never duplicates
	set.CalorieGoal = 2400
	if err := db.SetGoals(ctx, set); err != nil {
		t.Fatalf("SetGoals upsert failed: %v", err)
	}

	g, err = db.GetGoals(ctx, "alice")
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if g.CalorieGoal != 2400 {
		t.Errorf("CalorieGoal = %.0f, want 2400", g.CalorieGoal)
	}
	if g.StepGoal != 12000 {
		t.Errorf("StepGoal = %d, want 12000", g.StepGoal)
	}
}

func TestDuplicateIDIsConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	w := models.NewWeightLog("alice", time.Now(), 82.5, "kg")
	if err := db.CreateWeightLog(ctx, w); err != nil {
		t.Fatalf("CreateWeightLog failed: %v", err)
	}
	if err := db.CreateWeightLog(ctx, w); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate ID, got %v", err)
	}
}
