// ABOUTME: Tests for workout session model constructors and helpers.
// ABOUTME: Covers builder methods, set counting, and display fallback.
package models

import (
	"testing"
	"time"
)

func TestNewWorkoutSession(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewWorkoutSession("alice", date)

	if s.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", s.UserID)
	}
	if !s.SessionDate.Equal(date) {
		t.Errorf("SessionDate = %v, want %v", s.SessionDate, date)
	}
	if s.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("Expected generated UUID")
	}
	if s.Name != nil || s.Notes != nil || s.DurationSeconds != nil {
		t.Error("Expected nil optional fields")
	}
}

func TestSessionBuilders(t *testing.T) {
	s := NewWorkoutSession("alice", time.Now()).
		WithName("Push day").
		WithNotes("felt strong").
		WithDuration(3600)

	if s.Name == nil || *s.Name != "Push day" {
		t.Errorf("Name = %v", s.Name)
	}
	if s.Notes == nil || *s.Notes != "felt strong" {
		t.Errorf("Notes = %v", s.Notes)
	}
	if s.DurationSeconds == nil || *s.DurationSeconds != 3600 {
		t.Errorf("DurationSeconds = %v", s.DurationSeconds)
	}
}

func TestTotalSets(t *testing.T) {
	s := NewWorkoutSession("alice", time.Now())
	if s.TotalSets() != 0 {
		t.Errorf("TotalSets = %d, want 0", s.TotalSets())
	}

	s.Exercises = []SessionExercise{
		{ExerciseName: "Squat", Sets: []SetEntry{{SetNumber: 1}, {SetNumber: 2}}},
		{ExerciseName: "Bench", Sets: []SetEntry{{SetNumber: 1}}},
	}
	if s.TotalSets() != 3 {
		t.Errorf("TotalSets = %d, want 3", s.TotalSets())
	}
}

func TestDisplayName(t *testing.T) {
	s := NewWorkoutSession("alice", time.Now())
	if s.DisplayName() != "Workout" {
		t.Errorf("DisplayName = %q, want Workout", s.DisplayName())
	}

	empty := ""
	s.Name = &empty
	if s.DisplayName() != "Workout" {
		t.Errorf("DisplayName = %q, want Workout for empty name", s.DisplayName())
	}

	s.WithName("Push day")
	if s.DisplayName() != "Push day" {
		t.Errorf("DisplayName = %q, want Push day", s.DisplayName())
	}
}
