// ABOUTME: Tests for clamped daily counter adjustments.
// ABOUTME: Covers per-step clamping, zero-delta reads, and concurrent deltas.
package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

func TestAdjustCounterAccumulates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cl, err := db.AdjustCounter(ctx, "alice", day, models.CounterSteps, 2500)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 2500 {
		t.Errorf("Amount = %d, want 2500", cl.Amount)
	}

	cl, err = db.AdjustCounter(ctx, "alice", day, models.CounterSteps, 1500)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 4000 {
		t.Errorf("Amount = %d, want 4000", cl.Amount)
	}

	cl, err = db.AdjustCounter(ctx, "alice", day, models.CounterSteps, -500)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 3500 {
		t.Errorf("Amount = %d, want 3500", cl.Amount)
	}
}

func TestAdjustCounterClampsPerStep(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// A first negative delta clamps to zero rather than storing a debt
	cl, err := db.AdjustCounter(ctx, "alice", day, models.CounterWater, -300)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 0 {
		t.Errorf("Amount = %d, want 0", cl.Amount)
	}

	// The forfeited credit does not come back: 0, then +100 gives 100
	cl, err = db.AdjustCounter(ctx, "alice", day, models.CounterWater, 100)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 100 {
		t.Errorf("Amount = %d, want 100 (clamp is per adjustment)", cl.Amount)
	}

	// Over-subtracting an existing amount also floors at zero
	cl, err = db.AdjustCounter(ctx, "alice", day, models.CounterWater, -5000)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 0 {
		t.Errorf("Amount = %d, want 0", cl.Amount)
	}
}

func TestAdjustCounterZeroDeltaIsPureRead(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cl, err := db.AdjustCounter(ctx, "alice", day, models.CounterSteps, 0)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 0 {
		t.Errorf("Amount = %d, want 0", cl.Amount)
	}

	// No row may have been created by the read
	var count int
	row := db.db.QueryRow("SELECT COUNT(*) FROM counter_logs WHERE user_id = ?", "alice")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count counter rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Zero-delta read created %d rows", count)
	}
}

func TestAdjustCounterIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	if _, err := db.AdjustCounter(ctx, "alice", day1, models.CounterSteps, 1000); err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if _, err := db.AdjustCounter(ctx, "alice", day1, models.CounterWater, 250); err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if _, err := db.AdjustCounter(ctx, "bob", day1, models.CounterSteps, 7777); err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}

	// Different day, type, and user never bleed into each other
	cl, err := db.AdjustCounter(ctx, "alice", day2, models.CounterSteps, 0)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 0 {
		t.Errorf("Day 2 steps = %d, want 0", cl.Amount)
	}

	cl, err = db.AdjustCounter(ctx, "alice", day1, models.CounterSteps, 0)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 1000 {
		t.Errorf("Alice steps = %d, want 1000", cl.Amount)
	}

	cl, err = db.AdjustCounter(ctx, "alice", day1, models.CounterWater, 0)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	if cl.Amount != 250 {
		t.Errorf("Alice water = %d, want 250", cl.Amount)
	}
}

func TestAdjustCounterConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := db.AdjustCounter(ctx, "alice", day, models.CounterSteps, 10); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent AdjustCounter failed: %v", err)
	}

	cl, err := db.AdjustCounter(ctx, "alice", day, models.CounterSteps, 0)
	if err != nil {
		t.Fatalf("AdjustCounter failed: %v", err)
	}
	want := workers * perWorker * 10
	if cl.Amount != want {
		t.Errorf("Amount = %d, want %d (lost updates)", cl.Amount, want)
	}
}
