// ABOUTME: CLI commands for workout plan management.
// ABOUTME: Updates replace the whole exercise list, never merge it.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/spf13/cobra"
)

var planFile string

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"p"},
	Short:   "Manage workout plans",
	Long: `Create, update, and browse workout plans.

A plan is a named, ordered list of exercises with optional target set counts.
Updating a plan replaces its entire exercise list with the submitted one;
ordering follows the file. A plan must contain at least one exercise.

PLAN FILE FORMAT (JSON):

  {
    "name": "Upper body A",
    "description": "Heavy press focus",
    "exercises": [
      {"exercise_id": "<uuid>", "target_sets": 4},
      {"exercise_id": "<uuid>"}
    ]
  }`,
}

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a plan from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readPlanFile()
		if err != nil {
			return err
		}
		p, err := tracker.CreatePlan(cmd.Context(), flagUser, req)
		if err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		color.Green("✓ Created plan %q", p.Name)
		fmt.Printf("  %s %d exercises\n",
			color.New(color.Faint).Sprint(p.ID.String()[:8]), len(p.Exercises))
		return nil
	},
}

var planUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a plan's header and exercise list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan id: %s", args[0])
		}
		req, err := readPlanFile()
		if err != nil {
			return err
		}
		p, err := tracker.UpdatePlan(cmd.Context(), flagUser, id, req)
		if err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		color.Green("✓ Updated plan %q (%d exercises)", p.Name, len(p.Exercises))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List plans with their exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, err := tracker.Plans(cmd.Context(), flagUser)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("No plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			fmt.Printf("%s %s\n", faint.Sprint(p.ID.String()[:8]), p.Name)
			for _, pe := range p.Exercises {
				line := fmt.Sprintf("  %d. %s", pe.OrderIndex+1, pe.ExerciseName)
				if pe.TargetSets != nil {
					line += fmt.Sprintf(" (%d sets)", *pe.TargetSets)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plan with its ordered exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan id: %s", args[0])
		}
		p, err := tracker.Plan(cmd.Context(), flagUser, id)
		if err != nil {
			return fmt.Errorf("failed to fetch plan: %w", err)
		}

		fmt.Println(p.Name)
		if p.Description != nil {
			fmt.Printf("  %s\n", *p.Description)
		}
		for _, pe := range p.Exercises {
			line := fmt.Sprintf("  %d. %s", pe.OrderIndex+1, pe.ExerciseName)
			if pe.TargetSets != nil {
				line += fmt.Sprintf(" (%d sets)", *pe.TargetSets)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a plan",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan id: %s", args[0])
		}
		if err := tracker.DeletePlan(cmd.Context(), flagUser, id); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		color.Green("✓ Deleted plan %s", args[0][:8])
		return nil
	},
}

func readPlanFile() (*service.SavePlanRequest, error) {
	if planFile == "" {
		return nil, fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(planFile)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	var req service.SavePlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	return &req, nil
}

func init() {
	planAddCmd.Flags().StringVarP(&planFile, "file", "f", "", "JSON file with the plan")
	planUpdateCmd.Flags().StringVarP(&planFile, "file", "f", "", "JSON file with the plan")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planUpdateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}
