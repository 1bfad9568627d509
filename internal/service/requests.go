// ABOUTME: Request structs with validation tags for tracker operations.
// ABOUTME: Validation runs before any transaction begins.
package service

import "time"

// SetRequest is one set within a logged exercise.
type SetRequest struct {
	Reps   *int     `json:"reps,omitempty" validate:"omitempty,gte=0"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Unit   string   `json:"unit,omitempty" validate:"omitempty,oneof=kg lb"`
}

// SessionExerciseRequest is one exercise with its ordered sets.
type SessionExerciseRequest struct {
	ExerciseID string       `json:"exercise_id" validate:"required,uuid"`
	Sets       []SetRequest `json:"sets" validate:"required,min=1,dive"`
}

// LogSessionRequest is a full nested workout session submission.
// A session may have zero exercises (a bare header is valid).
type LogSessionRequest struct {
	Date            time.Time                `json:"date" validate:"required"`
	Name            string                   `json:"name,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	DurationSeconds int                      `json:"duration_seconds,omitempty" validate:"omitempty,gte=0"`
	Exercises       []SessionExerciseRequest `json:"exercises" validate:"dive"`
}

// PlanExerciseRequest is one entry in a plan's ordered exercise list.
type PlanExerciseRequest struct {
	ExerciseID string `json:"exercise_id" validate:"required,uuid"`
	TargetSets *int   `json:"target_sets,omitempty" validate:"omitempty,gte=1"`
}

// SavePlanRequest creates or replaces a plan. At least one exercise is
// required; an empty list never reaches storage.
type SavePlanRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description,omitempty"`
	Exercises   []PlanExerciseRequest `json:"exercises" validate:"required,min=1,dive"`
}

// MealRequest is a meal entry with macros.
type MealRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Calories float64   `json:"calories" validate:"gte=0"`
	Protein  float64   `json:"protein" validate:"gte=0"`
	Carbs    float64   `json:"carbs" validate:"gte=0"`
	Fat      float64   `json:"fat" validate:"gte=0"`
}

// GoalsRequest sets a user's daily targets.
type GoalsRequest struct {
	CalorieGoal float64 `json:"calorie_goal" validate:"gt=0"`
	ProteinGoal float64 `json:"protein_goal" validate:"gt=0"`
	CarbGoal    float64 `json:"carb_goal" validate:"gt=0"`
	FatGoal     float64 `json:"fat_goal" validate:"gt=0"`
	StepGoal    int     `json:"step_goal" validate:"gt=0"`
	WaterGoal   int     `json:"water_goal" validate:"gt=0"`
}
