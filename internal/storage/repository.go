// ABOUTME: Repository interface for fitness tracking data.
// ABOUTME: Implemented by SQLite (DB) and Postgres; allows swapping backends.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// Repository defines the storage interface for tracker data.
// All mutating composite operations are transactional: a failed write leaves
// zero rows behind.
type Repository interface {
	// Exercise catalog
	CreateExercise(ctx context.Context, e *models.Exercise) error
	ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error)
	DeleteExercise(ctx context.Context, id uuid.UUID, userID string) error

	// Workout sessions (composite: header + exercises + sets)
	CreateSession(ctx context.Context, s *models.WorkoutSession) error
	GetSessionWithDetails(ctx context.Context, id uuid.UUID, userID string) (*models.WorkoutSession, error)
	ListSessionsWithDetails(ctx context.Context, userID string, from, to *time.Time) ([]*models.WorkoutSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID, userID string) error

	// Workout plans (composite: header + ordered exercise list)
	CreatePlan(ctx context.Context, p *models.WorkoutPlan) error
	UpdatePlan(ctx context.Context, p *models.WorkoutPlan) error
	GetPlanWithDetails(ctx context.Context, id uuid.UUID) (*models.WorkoutPlan, error)
	ListPlansWithDetails(ctx context.Context, userID string) ([]*models.WorkoutPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID, userID string) error

	// Daily counters (steps, water). Delta of zero is a pure read.
	AdjustCounter(ctx context.Context, userID string, day time.Time, ct models.CounterType, delta int) (*models.CounterLog, error)

	// Weight and meal logs
	CreateWeightLog(ctx context.Context, w *models.WeightLog) error
	ListWeightLogs(ctx context.Context, userID string, limit int) ([]*models.WeightLog, error)
	CreateMealLog(ctx context.Context, m *models.MealLog) error
	ListMealLogs(ctx context.Context, userID string, limit int) ([]*models.MealLog, error)

	// Aggregation
	RecentActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityItem, error)
	TodaySummary(ctx context.Context, userID string, today time.Time) (*models.DailySummary, error)

	// Goals
	SetGoals(ctx context.Context, g *models.Goals) error
	GetGoals(ctx context.Context, userID string) (*models.Goals, error)

	// Export projections
	ExportSessionRows(ctx context.Context, userID string) ([]*SessionExportRow, error)
	ExportWeightRows(ctx context.Context, userID string) ([]*WeightExportRow, error)

	// Lifecycle
	Close() error
}

// Compile-time assertions
var (
	_ Repository = (*DB)(nil)
	_ Repository = (*Postgres)(nil)
)
