// ABOUTME: Daily counter, weight, and meal log models.
// ABOUTME: Counters are one row per (user, day, type) and never go negative.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CounterType identifies a daily accumulating counter.
type CounterType string

const (
	CounterSteps CounterType = "steps"
	CounterWater CounterType = "water"
)

// CounterUnits maps counter types to their display units.
var CounterUnits = map[CounterType]string{
	CounterSteps: "steps",
	CounterWater: "ml",
}

// AllCounterTypes returns all valid counter types.
var AllCounterTypes = []CounterType{CounterSteps, CounterWater}

// IsValidCounterType checks if a string is a valid counter type.
func IsValidCounterType(s string) bool {
	for _, ct := range AllCounterTypes {
		if string(ct) == s {
			return true
		}
	}
	return false
}

// CounterLog is the accumulated amount for one (user, day, type). The row is
// created lazily on the first non-zero adjustment; Amount is always >= 0.
type CounterLog struct {
	UserID      string
	LogDate     time.Time
	CounterType CounterType
	Amount      int
	UpdatedAt   time.Time
}

// WeightLog is a single bodyweight entry.
type WeightLog struct {
	ID        uuid.UUID
	UserID    string
	LogDate   time.Time
	Weight    float64
	Unit      string
	CreatedAt time.Time
}

// NewWeightLog creates a weight log with generated UUID and current timestamp.
func NewWeightLog(userID string, logDate time.Time, weight float64, unit string) *WeightLog {
	if unit == "" {
		unit = "kg"
	}
	return &WeightLog{
		ID:        uuid.New(),
		UserID:    userID,
		LogDate:   logDate,
		Weight:    weight,
		Unit:      unit,
		CreatedAt: time.Now(),
	}
}

// MealLog is a single meal entry with its macros.
type MealLog struct {
	ID        uuid.UUID
	UserID    string
	LogDate   time.Time
	Name      string
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	CreatedAt time.Time
}

// NewMealLog creates a meal log with generated UUID and current timestamp.
func NewMealLog(userID string, logDate time.Time, name string) *MealLog {
	return &MealLog{
		ID:        uuid.New(),
		UserID:    userID,
		LogDate:   logDate,
		Name:      name,
		CreatedAt: time.Now(),
	}
}
