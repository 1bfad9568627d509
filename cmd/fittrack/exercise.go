// ABOUTME: CLI commands for the per-user exercise catalog.
// ABOUTME: Deleting an exercise never touches logged sessions; they keep snapshots.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var exerciseMuscle string

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Manage the per-user exercise catalog.

Sessions reference catalog entries by ID and snapshot the name and muscle at
log time, so deleting an exercise leaves workout history intact.`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a catalog exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := tracker.AddExercise(cmd.Context(), flagUser, args[0], exerciseMuscle)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		color.Green("✓ Added %s", e.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(e.ID))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := tracker.Exercises(cmd.Context(), flagUser)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No exercises found. Add one with 'fittrack exercise add'.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, e := range list {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(e.ID.String()[:8]), padRight(e.Name, 24), faint.Sprint(e.Muscle))
		}
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a catalog exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid exercise id: %s", args[0])
		}
		if err := tracker.DeleteExercise(cmd.Context(), flagUser, id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		color.Green("✓ Deleted exercise %s", args[0][:8])
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().StringVar(&exerciseMuscle, "muscle", "general", "primary muscle group")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
