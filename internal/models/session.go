// ABOUTME: WorkoutSession model with nested exercises and sets.
// ABOUTME: Sessions snapshot exercise name/muscle so history survives catalog deletes.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DeletedExerciseName is shown when a set references an exercise that no
// longer exists and no snapshot name was captured.
const DeletedExerciseName = "Deleted Exercise"

// WorkoutSession represents one logged training session. Exercises and their
// sets are owned by the session and live/die with it.
type WorkoutSession struct {
	ID              uuid.UUID
	UserID          string
	SessionDate     time.Time
	Name            *string
	Notes           *string
	DurationSeconds *int
	CreatedAt       time.Time
	Exercises       []SessionExercise // Populated when fetching with details
}

// SessionExercise groups the sets performed for one exercise within a session.
// ExerciseID is nil once the referenced catalog exercise has been deleted.
type SessionExercise struct {
	ExerciseID   *uuid.UUID
	ExerciseName string
	Muscle       string
	Sets         []SetEntry
}

// SetEntry is a single performed set. SetNumber is the 1-based position of
// the set within its exercise, assigned at write time and never renumbered.
type SetEntry struct {
	SetNumber int
	Reps      *int
	Weight    *float64
	Unit      *string
}

// NewWorkoutSession creates a session with generated UUID and current timestamp.
func NewWorkoutSession(userID string, sessionDate time.Time) *WorkoutSession {
	return &WorkoutSession{
		ID:          uuid.New(),
		UserID:      userID,
		SessionDate: sessionDate,
		CreatedAt:   time.Now(),
	}
}

// WithName sets the session name.
func (s *WorkoutSession) WithName(name string) *WorkoutSession {
	s.Name = &name
	return s
}

// WithNotes sets notes on the session.
func (s *WorkoutSession) WithNotes(notes string) *WorkoutSession {
	s.Notes = &notes
	return s
}

// WithDuration sets the duration in seconds.
func (s *WorkoutSession) WithDuration(seconds int) *WorkoutSession {
	s.DurationSeconds = &seconds
	return s
}

// TotalSets counts the sets across all exercises.
func (s *WorkoutSession) TotalSets() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// DisplayName returns the session name, or the exercise-count fallback used
// in lists and the activity feed.
func (s *WorkoutSession) DisplayName() string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}
	return "Workout"
}
