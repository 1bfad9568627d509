// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Each test gets an isolated SQLite database in a temp directory.
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harperreed/fittrack/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedExercise(t *testing.T, db *DB, userID, name, muscle string) *models.Exercise {
	t.Helper()
	e := models.NewExercise(userID, name, muscle)
	if err := db.CreateExercise(context.Background(), e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	return e
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
