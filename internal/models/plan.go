// ABOUTME: WorkoutPlan model with an ordered exercise list.
// ABOUTME: OrderIndex is a dense 0-based sequence set by the caller's ordering.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutPlan is a reusable workout template owned by one user.
type WorkoutPlan struct {
	ID          uuid.UUID
	UserID      string
	Name        string
	Description *string
	CreatedAt   time.Time
	Exercises   []PlanExercise // Populated when fetching with details
}

// PlanExercise is one entry in a plan's ordered exercise list.
// ExerciseName is resolved from the catalog on read.
type PlanExercise struct {
	ExerciseID   uuid.UUID
	ExerciseName string
	TargetSets   *int
	OrderIndex   int
}

// NewWorkoutPlan creates a plan with generated UUID and current timestamp.
func NewWorkoutPlan(userID, name string) *WorkoutPlan {
	return &WorkoutPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// WithDescription sets the plan description.
func (p *WorkoutPlan) WithDescription(desc string) *WorkoutPlan {
	p.Description = &desc
	return p
}
