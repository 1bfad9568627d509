// ABOUTME: Activity feed merge and daily summary aggregation.
// ABOUTME: Three independent source queries merged in memory, never a UNION.
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// RecentActivity merges the user's workout sessions, weight logs, and meal
// logs into one feed sorted by (activity date desc, created_at desc) and
// truncated to limit.
func (d *DB) RecentActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityItem, error) {
	return mergeRecentActivity(ctx, d, userID, limit)
}

// mergeRecentActivity builds the feed from any Repository. CreatedAt is the
// only tie-break on equal dates; the item type never influences ordering.
func mergeRecentActivity(ctx context.Context, repo Repository, userID string, limit int) ([]*models.ActivityItem, error) {
	if limit <= 0 {
		limit = 20
	}

	var items []*models.ActivityItem

	sessions, err := repo.ListSessionsWithDetails(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	for _, s := range sessions {
		desc := s.DisplayName()
		if n := s.TotalSets(); n > 0 {
			desc = fmt.Sprintf("%s (%d sets)", desc, n)
		}
		items = append(items, &models.ActivityItem{
			ID:           s.ID,
			Type:         models.ActivityWorkout,
			Description:  desc,
			ActivityDate: s.SessionDate,
			CreatedAt:    s.CreatedAt,
		})
	}

	weights, err := repo.ListWeightLogs(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	for _, w := range weights {
		items = append(items, &models.ActivityItem{
			ID:           w.ID,
			Type:         models.ActivityWeight,
			Description:  fmt.Sprintf("Weighed in at %.1f %s", w.Weight, w.Unit),
			ActivityDate: w.LogDate,
			CreatedAt:    w.CreatedAt,
		})
	}

	meals, err := repo.ListMealLogs(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	for _, m := range meals {
		items = append(items, &models.ActivityItem{
			ID:           m.ID,
			Type:         models.ActivityMeal,
			Description:  fmt.Sprintf("%s (%.0f kcal)", m.Name, m.Calories),
			ActivityDate: m.LogDate,
			CreatedAt:    m.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].ActivityDate.Equal(items[j].ActivityDate) {
			return items[i].ActivityDate.After(items[j].ActivityDate)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// TodaySummary combines the day's meal macro sums, step and water counters,
// and the user's goal targets. NULL aggregates and missing counter rows all
// read as zero.
func (d *DB) TodaySummary(ctx context.Context, userID string, today time.Time) (*models.DailySummary, error) {
	summary := &models.DailySummary{Date: today}

	row := d.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0),
		       COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0)
		FROM meal_logs
		WHERE user_id = ? AND log_date = ?`,
		userID, today.Format(dateLayout))
	if err := row.Scan(&summary.Calories, &summary.Protein, &summary.Carbs, &summary.Fat); err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}

	// Zero-delta adjustments are pure reads.
	steps, err := d.AdjustCounter(ctx, userID, today, models.CounterSteps, 0)
	if err != nil {
		return nil, err
	}
	summary.Steps = steps.Amount

	water, err := d.AdjustCounter(ctx, userID, today, models.CounterWater, 0)
	if err != nil {
		return nil, err
	}
	summary.Water = water.Amount

	goals, err := d.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.Goals = goals

	return summary, nil
}
