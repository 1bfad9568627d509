// ABOUTME: Daily counter (steps, water) storage via a clamped atomic upsert.
// ABOUTME: The clamp runs inside the statement so concurrent deltas never lose updates.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// AdjustCounter applies a signed delta to the (user, day, type) counter.
//
// A zero delta is a pure read: no row is created, and a missing row comes
// back as a synthetic zero-valued record. Otherwise a single upsert statement
// inserts MAX(0, delta) or folds MAX(0, amount + delta) into the existing
// row. The clamp is applied per adjustment, not once at the end, so negative
// credit below zero is forfeited at each step. A read-modify-write here would
// lose concurrent updates; the arithmetic stays in the statement.
func (d *DB) AdjustCounter(ctx context.Context, userID string, day time.Time, ct models.CounterType, delta int) (*models.CounterLog, error) {
	date := day.Format(dateLayout)

	if delta != 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err := d.db.ExecContext(ctx, `
			INSERT INTO counter_logs (user_id, log_date, counter_type, amount, updated_at)
			VALUES (?, ?, ?, MAX(0, ?), ?)
			ON CONFLICT(user_id, log_date, counter_type)
			DO UPDATE SET amount = MAX(0, amount + ?), updated_at = excluded.updated_at`,
			userID, date, string(ct), delta, now, delta)
		if err != nil {
			return nil, classify(fmt.Errorf("adjust %s counter: %w", ct, err))
		}
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT amount, updated_at FROM counter_logs
		WHERE user_id = ? AND log_date = ? AND counter_type = ?`,
		userID, date, string(ct))

	cl := &models.CounterLog{
		UserID:      userID,
		LogDate:     day,
		CounterType: ct,
	}
	var updatedAt string
	err := row.Scan(&cl.Amount, &updatedAt)
	if err == sql.ErrNoRows {
		// Only reachable for a zero delta: return the synthetic zero row.
		return cl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s counter: %w", ct, err)
	}
	cl.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return cl, nil
}
