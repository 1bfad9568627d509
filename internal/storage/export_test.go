// ABOUTME: Tests for the flat export projection and its encoders.
// ABOUTME: Verifies per-set flattening, empty-session rows, and chronological order.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

func TestExportSessionRowsFlattens(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")
	s := buildSession("alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), squat)
	s.WithName("Leg day")
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	rows, err := db.ExportSessionRows(ctx, "alice")
	if err != nil {
		t.Fatalf("ExportSessionRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows (one per set), got %d", len(rows))
	}
	for i, r := range rows {
		// Session fields repeat on every row
		if r.SessionID != s.ID.String() {
			t.Errorf("row %d: SessionID = %s", i, r.SessionID)
		}
		if r.SessionName == nil || *r.SessionName != "Leg day" {
			t.Errorf("row %d: SessionName = %v", i, r.SessionName)
		}
		if r.ExerciseName == nil || *r.ExerciseName != "Squat" {
			t.Errorf("row %d: ExerciseName = %v", i, r.ExerciseName)
		}
		if r.SetNumber == nil || *r.SetNumber != i+1 {
			t.Errorf("row %d: SetNumber = %v", i, r.SetNumber)
		}
	}
}

func TestExportKeepsEmptySessions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := models.NewWorkoutSession("alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	s.WithName("Rest day walk")
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	rows, err := db.ExportSessionRows(ctx, "alice")
	if err != nil {
		t.Fatalf("ExportSessionRows failed: %v", err)
	}
	// A set-less session still yields exactly one row, with nil leaf fields
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row for empty session, got %d", len(rows))
	}
	r := rows[0]
	if r.SessionName == nil || *r.SessionName != "Rest day walk" {
		t.Errorf("SessionName = %v", r.SessionName)
	}
	if r.ExerciseName != nil || r.SetNumber != nil || r.Reps != nil || r.Weight != nil {
		t.Errorf("Expected nil leaf fields, got %+v", r)
	}
}

func TestExportSessionRowsChronological(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		s := models.NewWorkoutSession("alice", day)
		if err := db.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	rows, err := db.ExportSessionRows(ctx, "alice")
	if err != nil {
		t.Fatalf("ExportSessionRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	// Export is oldest first, the reverse of the interactive list
	for i := 1; i < len(rows); i++ {
		if rows[i].SessionDate.Before(rows[i-1].SessionDate) {
			t.Errorf("rows out of order: %v before %v", rows[i].SessionDate, rows[i-1].SessionDate)
		}
	}
}

func TestExportWeightRowsAscending(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, day := range days {
		w := models.NewWeightLog("alice", day, 80+float64(i), "kg")
		if err := db.CreateWeightLog(ctx, w); err != nil {
			t.Fatalf("CreateWeightLog failed: %v", err)
		}
	}

	rows, err := db.ExportWeightRows(ctx, "alice")
	if err != nil {
		t.Fatalf("ExportWeightRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if !rows[0].LogDate.Before(rows[1].LogDate) {
		t.Errorf("Expected ascending dates, got %v then %v", rows[0].LogDate, rows[1].LogDate)
	}
}

func TestBuildExportEncoders(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := seedExercise(t, db, "alice", "Squat", "legs")
	s := buildSession("alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), squat)
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	w := models.NewWeightLog("alice", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 82.5, "kg")
	if err := db.CreateWeightLog(ctx, w); err != nil {
		t.Fatalf("CreateWeightLog failed: %v", err)
	}

	data, err := BuildExport(ctx, db, "alice")
	if err != nil {
		t.Fatalf("BuildExport failed: %v", err)
	}
	if data.Version != "1.0" || data.Tool != "fittrack" {
		t.Errorf("Unexpected envelope: version=%s tool=%s", data.Version, data.Tool)
	}
	if len(data.Sessions) != 2 || len(data.Weights) != 1 {
		t.Fatalf("Expected 2 session rows and 1 weight row, got %d/%d",
			len(data.Sessions), len(data.Weights))
	}

	jsonOut, err := data.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded ExportData
	if err := json.Unmarshal(jsonOut, &decoded); err != nil {
		t.Fatalf("JSON output does not round-trip: %v", err)
	}
	if len(decoded.Sessions) != 2 {
		t.Errorf("Decoded %d session rows, want 2", len(decoded.Sessions))
	}

	yamlOut, err := data.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	if !strings.Contains(string(yamlOut), "exercise_name: Squat") {
		t.Errorf("YAML output missing exercise name:\n%s", yamlOut)
	}

	csvOut, err := data.CSV()
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvOut)), "\n")
	// header + 2 set rows + blank + weight header + 1 weight row
	if len(lines) != 6 {
		t.Errorf("Expected 6 CSV lines, got %d:\n%s", len(lines), csvOut)
	}
	if !strings.HasPrefix(lines[0], "session_id,session_date") {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}
}

func TestExportScopedByUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := models.NewWorkoutSession("alice", time.Now())
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	rows, err := db.ExportSessionRows(ctx, "bob")
	if err != nil {
		t.Fatalf("ExportSessionRows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows for bob, got %d", len(rows))
	}
}
