// ABOUTME: Export projections and JSON/YAML/CSV encoders.
// ABOUTME: Sessions flatten to one row per set; empty sessions still emit one row.
package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionExportRow is one flat export record. Session fields repeat on every
// row; leaf fields are nil on the single row emitted for a session that has
// no sets.
type SessionExportRow struct {
	SessionID       string    `json:"session_id" yaml:"session_id"`
	SessionDate     time.Time `json:"session_date" yaml:"session_date"`
	SessionName     *string   `json:"session_name,omitempty" yaml:"session_name,omitempty"`
	Notes           *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	DurationSeconds *int      `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	ExerciseName    *string   `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	SetNumber       *int      `json:"set_number,omitempty" yaml:"set_number,omitempty"`
	Reps            *int      `json:"reps,omitempty" yaml:"reps,omitempty"`
	Weight          *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Unit            *string   `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// WeightExportRow is one weight entry in chronological order. Export is
// ascending by date; the interactive history view is the one that reads
// newest first.
type WeightExportRow struct {
	LogDate   time.Time `json:"log_date" yaml:"log_date"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Unit      string    `json:"unit" yaml:"unit"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ExportData is the full export document.
type ExportData struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool       string              `json:"tool" yaml:"tool"`
	Sessions   []*SessionExportRow `json:"sessions" yaml:"sessions"`
	Weights    []*WeightExportRow  `json:"weights" yaml:"weights"`
}

// ExportSessionRows flattens every session of the user into per-set rows.
// The LEFT JOIN keeps sessions with zero sets in the output as a single row
// with nil leaf fields, so no session is silently dropped.
func (d *DB) ExportSessionRows(ctx context.Context, userID string) ([]*SessionExportRow, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT ws.id, ws.session_date, ws.name, ws.notes, ws.duration_seconds,
		       COALESCE(e.name, ss.exercise_name), ss.set_number, ss.reps, ss.weight, ss.unit
		FROM workout_sessions ws
		LEFT JOIN session_sets ss ON ss.session_id = ws.id
		LEFT JOIN exercises e ON e.id = ss.exercise_id
		WHERE ws.user_id = ?
		ORDER BY ws.session_date ASC, ws.created_at ASC, ss.seq ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	defer rows.Close()

	var out []*SessionExportRow
	for rows.Next() {
		var r SessionExportRow
		var sessionDate string
		var name, notes, exerciseName, unit sql.NullString
		var duration, setNumber, reps sql.NullInt64
		var weight sql.NullFloat64

		err := rows.Scan(&r.SessionID, &sessionDate, &name, &notes, &duration,
			&exerciseName, &setNumber, &reps, &weight, &unit)
		if err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}

		r.SessionDate, _ = time.Parse(dateLayout, sessionDate)
		if name.Valid {
			r.SessionName = &name.String
		}
		if notes.Valid {
			r.Notes = &notes.String
		}
		if duration.Valid {
			v := int(duration.Int64)
			r.DurationSeconds = &v
		}
		if exerciseName.Valid {
			r.ExerciseName = &exerciseName.String
		}
		if setNumber.Valid {
			v := int(setNumber.Int64)
			r.SetNumber = &v
		}
		if reps.Valid {
			v := int(reps.Int64)
			r.Reps = &v
		}
		if weight.Valid {
			r.Weight = &weight.Float64
		}
		if unit.Valid {
			r.Unit = &unit.String
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// ExportWeightRows projects weight entries ascending by date.
func (d *DB) ExportWeightRows(ctx context.Context, userID string) ([]*WeightExportRow, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT log_date, weight, unit, created_at
		FROM weight_logs
		WHERE user_id = ?
		ORDER BY log_date ASC, created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	defer rows.Close()

	var out []*WeightExportRow
	for rows.Next() {
		var r WeightExportRow
		var logDate, createdAt string
		if err := rows.Scan(&logDate, &r.Weight, &r.Unit, &createdAt); err != nil {
			return nil, fmt.Errorf("scan weight export row: %w", err)
		}
		r.LogDate, _ = time.Parse(dateLayout, logDate)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// BuildExport assembles the full export document from any Repository.
func BuildExport(ctx context.Context, repo Repository, userID string) (*ExportData, error) {
	sessions, err := repo.ExportSessionRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	weights, err := repo.ExportWeightRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fittrack",
		Sessions:   sessions,
		Weights:    weights,
	}, nil
}

// JSON encodes the export document as indented JSON.
func (e *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// YAML encodes the export document as YAML.
func (e *ExportData) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// CSV encodes the session rows as CSV, one line per set. Weight entries get
// their own section after a blank line.
func (e *ExportData) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"session_id", "session_date", "session_name", "exercise", "set_number", "reps", "weight", "unit"}); err != nil {
		return nil, err
	}
	for _, r := range e.Sessions {
		record := []string{
			r.SessionID,
			r.SessionDate.Format(dateLayout),
			strOrEmpty(r.SessionName),
			strOrEmpty(r.ExerciseName),
			intOrEmpty(r.SetNumber),
			intOrEmpty(r.Reps),
			floatOrEmpty(r.Weight),
			strOrEmpty(r.Unit),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"log_date", "weight", "unit"}); err != nil {
		return nil, err
	}
	for _, r := range e.Weights {
		record := []string{
			r.LogDate.Format(dateLayout),
			strconv.FormatFloat(r.Weight, 'f', -1, 64),
			r.Unit,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
