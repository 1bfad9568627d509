// ABOUTME: CLI commands for the unified activity feed, daily summary, and goals.
// ABOUTME: The feed interleaves workouts, weigh-ins, and meals, newest first.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	activityLimit int

	goalCalories float64
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
	goalSteps    int
	goalWater    int
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"feed"},
	Short:   "Show recent activity across workouts, weight, and meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := tracker.RecentActivity(cmd.Context(), flagUser, activityLimit)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No activity yet.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, it := range items {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(it.ActivityDate.Format("2006-01-02")),
				padRight(string(it.Type), 8), it.Description)
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show today's totals against goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := tracker.TodaySummary(cmd.Context(), flagUser, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load summary: %w", err)
		}

		fmt.Printf("Summary for %s\n\n", s.Date.Format("2006-01-02"))
		printGoalLine("Calories", s.Calories, s.Goals.CalorieGoal, "kcal")
		printGoalLine("Protein", s.Protein, s.Goals.ProteinGoal, "g")
		printGoalLine("Carbs", s.Carbs, s.Goals.CarbGoal, "g")
		printGoalLine("Fat", s.Fat, s.Goals.FatGoal, "g")
		printGoalLine("Steps", float64(s.Steps), float64(s.Goals.StepGoal), "")
		printGoalLine("Water", float64(s.Water), float64(s.Goals.WaterGoal), "ml")
		return nil
	},
}

func printGoalLine(label string, value, goal float64, unit string) {
	line := fmt.Sprintf("  %s %8.0f / %.0f %s", padRight(label, 10), value, goal, unit)
	if goal > 0 && value >= goal {
		color.Green("%s ✓", line)
		return
	}
	fmt.Println(line)
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or set daily goals",
	Long: `Show the current daily goals, or set them with flags.

Examples:
  fittrack goals
  fittrack goals --calories 2200 --protein 160 --steps 12000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("calories") && !cmd.Flags().Changed("protein") &&
			!cmd.Flags().Changed("carbs") && !cmd.Flags().Changed("fat") &&
			!cmd.Flags().Changed("steps") && !cmd.Flags().Changed("water") {
			s, err := tracker.TodaySummary(cmd.Context(), flagUser, time.Now())
			if err != nil {
				return fmt.Errorf("failed to load goals: %w", err)
			}
			printGoals(s.Goals)
			return nil
		}

		g, err := tracker.SetGoals(cmd.Context(), flagUser, &service.GoalsRequest{
			CalorieGoal: goalCalories,
			ProteinGoal: goalProtein,
			CarbGoal:    goalCarbs,
			FatGoal:     goalFat,
			StepGoal:    goalSteps,
			WaterGoal:   goalWater,
		})
		if err != nil {
			return fmt.Errorf("failed to set goals: %w", err)
		}
		color.Green("✓ Goals updated")
		printGoals(g)
		return nil
	},
}

func printGoals(g *models.Goals) {
	fmt.Printf("  Calories  %.0f kcal\n", g.CalorieGoal)
	fmt.Printf("  Protein   %.0f g\n", g.ProteinGoal)
	fmt.Printf("  Carbs     %.0f g\n", g.CarbGoal)
	fmt.Printf("  Fat       %.0f g\n", g.FatGoal)
	fmt.Printf("  Steps     %d\n", g.StepGoal)
	fmt.Printf("  Water     %d ml\n", g.WaterGoal)
}

func init() {
	activityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "max feed items")

	defaults := models.DefaultGoals("")
	goalsCmd.Flags().Float64Var(&goalCalories, "calories", defaults.CalorieGoal, "daily calorie goal (kcal)")
	goalsCmd.Flags().Float64Var(&goalProtein, "protein", defaults.ProteinGoal, "daily protein goal (g)")
	goalsCmd.Flags().Float64Var(&goalCarbs, "carbs", defaults.CarbGoal, "daily carb goal (g)")
	goalsCmd.Flags().Float64Var(&goalFat, "fat", defaults.FatGoal, "daily fat goal (g)")
	goalsCmd.Flags().IntVar(&goalSteps, "steps", defaults.StepGoal, "daily step goal")
	goalsCmd.Flags().IntVar(&goalWater, "water", defaults.WaterGoal, "daily water goal (ml)")

	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(goalsCmd)
}
