// ABOUTME: Transactional workout session writes and nested reconstruction reads.
// ABOUTME: One header row plus one leaf row per set; all-or-nothing per session.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// CreateSession persists a session header and one leaf row per set, all in a
// single transaction. Any insert failure rolls back the whole session, so a
// reader can never observe a partially written one. Set numbers are assigned
// here as the 1-based position within each exercise.
func (d *DB) CreateSession(ctx context.Context, s *models.WorkoutSession) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, user_id, session_date, name, notes, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(),
		s.UserID,
		s.SessionDate.Format(dateLayout),
		s.Name,
		s.Notes,
		s.DurationSeconds,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return classify(fmt.Errorf("insert session: %w", err))
	}

	seq := 0
	for ei := range s.Exercises {
		ex := &s.Exercises[ei]
		var exerciseID any
		if ex.ExerciseID != nil {
			exerciseID = ex.ExerciseID.String()
		}
		for si := range ex.Sets {
			set := &ex.Sets[si]
			set.SetNumber = si + 1
			_, err = tx.ExecContext(ctx, `
				INSERT INTO session_sets (id, session_id, exercise_id, exercise_name, muscle, set_number, reps, weight, unit, seq)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(),
				s.ID.String(),
				exerciseID,
				ex.ExerciseName,
				ex.Muscle,
				set.SetNumber,
				set.Reps,
				set.Weight,
				set.Unit,
				seq,
			)
			if err != nil {
				return classify(fmt.Errorf("insert set %d of exercise %d: %w", set.SetNumber, ei, err))
			}
			seq++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create session: %w", err)
	}
	return nil
}

// GetSessionWithDetails fetches one session and its nested exercises/sets.
// Returns ErrNotFound when the session does not exist or belongs to another
// user.
func (d *DB) GetSessionWithDetails(ctx context.Context, id uuid.UUID, userID string) (*models.WorkoutSession, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_date, name, notes, duration_seconds, created_at
		FROM workout_sessions
		WHERE id = ? AND user_id = ?`,
		id.String(), userID)

	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}

	if err := d.attachSessionDetails(ctx, []*models.WorkoutSession{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSessionsWithDetails fetches all of a user's sessions, optionally
// bounded by an inclusive date range, newest first by (session_date,
// created_at). Leaf rows are fetched in one bulk query and regrouped.
func (d *DB) ListSessionsWithDetails(ctx context.Context, userID string, from, to *time.Time) ([]*models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, session_date, name, notes, duration_seconds, created_at
		FROM workout_sessions
		WHERE user_id = ?`
	args := []any{userID}

	if from != nil {
		query += " AND session_date >= ?"
		args = append(args, from.Format(dateLayout))
	}
	if to != nil {
		query += " AND session_date <= ?"
		args = append(args, to.Format(dateLayout))
	}
	query += " ORDER BY session_date DESC, created_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	if err := d.attachSessionDetails(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteSession removes a session and all its sets (cascade). Ownership is
// enforced in the delete statement itself.
func (d *DB) DeleteSession(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM workout_sessions WHERE id = ? AND user_id = ?",
		id.String(), userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// attachSessionDetails bulk-fetches the leaf rows for the given sessions and
// regroups them into the nested shape the write path accepted: first by
// session, then by exercise in first-seen order, sets in insertion order.
// A leaf row whose exercise was deleted gets its own synthetic group key so
// orphans from different exercises never collapse together.
func (d *DB) attachSessionDetails(ctx context.Context, sessions []*models.WorkoutSession) error {
	if len(sessions) == 0 {
		return nil
	}

	byID := make(map[string]*models.WorkoutSession, len(sessions))
	placeholders := make([]string, 0, len(sessions))
	args := make([]any, 0, len(sessions))
	for _, s := range sessions {
		byID[s.ID.String()] = s
		placeholders = append(placeholders, "?")
		args = append(args, s.ID.String())
	}

	query := fmt.Sprintf(`
		SELECT ss.session_id, ss.exercise_id, ss.exercise_name, ss.muscle,
		       ss.set_number, ss.reps, ss.weight, ss.unit,
		       e.name, e.muscle
		FROM session_sets ss
		LEFT JOIN exercises e ON e.id = ss.exercise_id
		WHERE ss.session_id IN (%s)
		ORDER BY ss.session_id, ss.seq`,
		strings.Join(placeholders, ", "))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list session sets: %w", err)
	}
	defer rows.Close()

	// groupIdx maps (session id, group key) to the exercise's position in
	// the session's slice, preserving first-seen order.
	groupIdx := make(map[string]int)
	orphan := 0

	for rows.Next() {
		var sessionID string
		var exerciseID, unit, liveName, liveMuscle sql.NullString
		var snapName, snapMuscle string
		var setNumber int
		var reps sql.NullInt64
		var weight sql.NullFloat64

		err := rows.Scan(&sessionID, &exerciseID, &snapName, &snapMuscle,
			&setNumber, &reps, &weight, &unit, &liveName, &liveMuscle)
		if err != nil {
			return fmt.Errorf("scan session set: %w", err)
		}

		s, ok := byID[sessionID]
		if !ok {
			continue
		}

		var groupKey string
		if exerciseID.Valid {
			groupKey = exerciseID.String
		} else {
			groupKey = "orphan:" + strconv.Itoa(orphan)
			orphan++
		}

		key := sessionID + "/" + groupKey
		idx, ok := groupIdx[key]
		if !ok {
			ex := models.SessionExercise{
				ExerciseName: resolveName(liveName, snapName),
				Muscle:       resolveMuscle(liveMuscle, snapMuscle),
			}
			if exerciseID.Valid {
				if parsed, err := uuid.Parse(exerciseID.String); err == nil {
					ex.ExerciseID = &parsed
				}
			}
			s.Exercises = append(s.Exercises, ex)
			idx = len(s.Exercises) - 1
			groupIdx[key] = idx
		}

		set := models.SetEntry{SetNumber: setNumber}
		if reps.Valid {
			r := int(reps.Int64)
			set.Reps = &r
		}
		if weight.Valid {
			w := weight.Float64
			set.Weight = &w
		}
		if unit.Valid {
			u := unit.String
			set.Unit = &u
		}
		s.Exercises[idx].Sets = append(s.Exercises[idx].Sets, set)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("list session sets: %w", err)
	}
	return nil
}

// resolveName prefers the live catalog name, then the write-time snapshot.
func resolveName(live sql.NullString, snapshot string) string {
	if live.Valid && live.String != "" {
		return live.String
	}
	if snapshot != "" {
		return snapshot
	}
	return models.DeletedExerciseName
}

func resolveMuscle(live sql.NullString, snapshot string) string {
	if live.Valid && live.String != "" {
		return live.String
	}
	return snapshot
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	var idStr, sessionDate, createdAt string
	var name, notes sql.NullString
	var duration sql.NullInt64

	err := row.Scan(&idStr, &s.UserID, &sessionDate, &name, &notes, &duration, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.SessionDate, _ = time.Parse(dateLayout, sessionDate)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if name.Valid {
		s.Name = &name.String
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	if duration.Valid {
		v := int(duration.Int64)
		s.DurationSeconds = &v
	}
	return &s, nil
}
