// ABOUTME: Derived read models: activity feed items, daily summary, goals.
// ABOUTME: These are projections over other tables, never persisted themselves.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType identifies the source table of a feed item.
type ActivityType string

const (
	ActivityWorkout ActivityType = "workout"
	ActivityWeight  ActivityType = "weight"
	ActivityMeal    ActivityType = "meal"
)

// ActivityItem is one entry in the unified activity feed. The feed sorts by
// ActivityDate descending with CreatedAt descending as the only tie-break.
type ActivityItem struct {
	ID           uuid.UUID
	Type         ActivityType
	Description  string
	ActivityDate time.Time
	CreatedAt    time.Time
}

// Goals holds a user's static daily targets.
type Goals struct {
	UserID      string
	CalorieGoal float64
	ProteinGoal float64
	CarbGoal    float64
	FatGoal     float64
	StepGoal    int
	WaterGoal   int
}

// DefaultGoals returns the targets used before a user sets their own.
func DefaultGoals(userID string) *Goals {
	return &Goals{
		UserID:      userID,
		CalorieGoal: 2000,
		ProteinGoal: 150,
		CarbGoal:    250,
		FatGoal:     70,
		StepGoal:    10000,
		WaterGoal:   2000,
	}
}

// DailySummary aggregates one day's nutrition and activity against goals.
// Missing sources contribute zero, not absence.
type DailySummary struct {
	Date     time.Time
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Steps    int
	Water    int
	Goals    *Goals
}
