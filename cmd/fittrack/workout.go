// ABOUTME: CLI commands for logging and browsing workout sessions.
// ABOUTME: Full nested sessions are read from a JSON file; bare headers from flags.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	workoutFile     string
	workoutName     string
	workoutNotes    string
	workoutDate     string
	workoutDuration int
	workoutFrom     string
	workoutTo       string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout sessions",
	Long: `Log and browse workout sessions.

A session is a header (date, name, notes, duration) plus an ordered list of
exercises, each with an ordered list of sets. The whole session is written
atomically: either every set lands or none do.

WORKFLOW:

  1. Register exercises once:  fittrack exercise add "Squat" --muscle legs
  2. Log a session from JSON:  fittrack workout add --file session.json
  3. Browse:                   fittrack workout list
  4. Inspect one:              fittrack workout show <id>

SESSION FILE FORMAT (JSON):

  {
    "date": "2025-03-01T00:00:00Z",
    "name": "Push day",
    "exercises": [
      {"exercise_id": "<uuid>", "sets": [{"reps": 8, "weight": 60, "unit": "kg"}]}
    ]
  }`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout session",
	Long: `Log a workout session.

Examples:
  fittrack workout add --file push-day.json
  fittrack workout add --name "Morning run" --duration 1800`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &service.LogSessionRequest{Date: time.Now()}

		if workoutFile != "" {
			data, err := os.ReadFile(workoutFile)
			if err != nil {
				return fmt.Errorf("read session file: %w", err)
			}
			if err := json.Unmarshal(data, req); err != nil {
				return fmt.Errorf("parse session file: %w", err)
			}
			if req.Date.IsZero() {
				req.Date = time.Now()
			}
		}
		if workoutDate != "" {
			d, err := parseDate(workoutDate)
			if err != nil {
				return err
			}
			req.Date = d
		}
		if workoutName != "" {
			req.Name = workoutName
		}
		if workoutNotes != "" {
			req.Notes = workoutNotes
		}
		if workoutDuration > 0 {
			req.DurationSeconds = workoutDuration
		}

		s, err := tracker.LogSession(cmd.Context(), flagUser, req)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s", s.DisplayName())
		fmt.Printf("  %s %s, %d exercises, %d sets\n",
			color.New(color.Faint).Sprint(s.ID.String()[:8]),
			s.SessionDate.Format("2006-01-02"),
			len(s.Exercises), s.TotalSets())
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		var from, to *time.Time
		if workoutFrom != "" {
			d, err := parseDate(workoutFrom)
			if err != nil {
				return err
			}
			from = &d
		}
		if workoutTo != "" {
			d, err := parseDate(workoutTo)
			if err != nil {
				return err
			}
			to = &d
		}

		sessions, err := tracker.Sessions(cmd.Context(), flagUser, from, to)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			fmt.Printf("%s %s %s  %d exercises, %d sets\n",
				faint.Sprint(s.ID.String()[:8]),
				faint.Sprint(s.SessionDate.Format("2006-01-02")),
				padRight(s.DisplayName(), 24),
				len(s.Exercises), s.TotalSets())
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its exercises and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id: %s", args[0])
		}

		s, err := tracker.Session(cmd.Context(), flagUser, id)
		if err != nil {
			return fmt.Errorf("failed to fetch workout: %w", err)
		}

		fmt.Printf("%s  %s\n", s.DisplayName(), s.SessionDate.Format("2006-01-02"))
		if s.Notes != nil {
			fmt.Printf("  %s\n", *s.Notes)
		}
		for _, ex := range s.Exercises {
			fmt.Printf("  %s (%s)\n", ex.ExerciseName, ex.Muscle)
			for _, set := range ex.Sets {
				line := fmt.Sprintf("    #%d", set.SetNumber)
				if set.Reps != nil {
					line += fmt.Sprintf("  %d reps", *set.Reps)
				}
				if set.Weight != nil {
					unit := "kg"
					if set.Unit != nil {
						unit = *set.Unit
					}
					line += fmt.Sprintf("  %.1f %s", *set.Weight, unit)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout and all its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id: %s", args[0])
		}
		if err := tracker.DeleteSession(cmd.Context(), flagUser, id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		color.Green("✓ Deleted workout %s", args[0][:8])
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutFile, "file", "f", "", "JSON file with the full session")
	workoutAddCmd.Flags().StringVar(&workoutName, "name", "", "session name")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "session notes")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "session date (YYYY-MM-DD)")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "duration in seconds")
	workoutListCmd.Flags().StringVar(&workoutFrom, "from", "", "inclusive start date (YYYY-MM-DD)")
	workoutListCmd.Flags().StringVar(&workoutTo, "to", "", "inclusive end date (YYYY-MM-DD)")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
