// ABOUTME: Root Cobra command for fittrack CLI.
// ABOUTME: Handles storage/service lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagUser    string
	flagVerbose bool

	repo    storage.Repository
	tracker *service.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal fitness and nutrition tracker",
	Long: `Fittrack is a fitness and nutrition tracking backend with a CLI.

WHAT IT TRACKS:

  Workouts    sessions with exercises and sets (reps, weight)
  Plans       reusable ordered exercise templates with target sets
  Counters    daily steps and water, adjustable up and down
  Nutrition   meals with calories, protein, carbs, fat
  Weight      bodyweight history

QUICK START:

  $ fittrack exercise add "Bench Press" --muscle chest
  $ fittrack workout add --file session.json     # Log a full session
  $ fittrack steps 2500                          # Add steps for today
  $ fittrack water -250                          # Undo a water entry
  $ fittrack meal "Chicken bowl" --calories 650 --protein 45
  $ fittrack activity                            # Unified feed
  $ fittrack summary                             # Today vs goals

EXPORT:

  $ fittrack export --format yaml                # Chronological flat export

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants.

DATA STORAGE:

  SQLite at ~/.local/share/fittrack/fittrack.db by default. Set
  "backend": "postgres" and a "dsn" in the config file to use Postgres.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := zap.NewNop().Sugar()
		if flagVerbose {
			zl, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = zl.Sugar()
		}

		repo, err = cfg.OpenStorage(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		tracker = service.New(repo, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "local", "acting user ID")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
}
