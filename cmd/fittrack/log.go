// ABOUTME: CLI commands for weight and meal logging.
// ABOUTME: Weight history is shown newest first; export is the chronological view.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	weightUnit  string
	weightDate  string
	weightLimit int

	mealDate     string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
)

var weightCmd = &cobra.Command{
	Use:   "weight [value]",
	Short: "Log bodyweight or show history",
	Long: `Log a bodyweight entry, or show recent history when no value is given.

Examples:
  fittrack weight 82.5
  fittrack weight 181 --unit lb
  fittrack weight`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			logs, err := tracker.WeightHistory(cmd.Context(), flagUser, weightLimit)
			if err != nil {
				return fmt.Errorf("failed to list weight logs: %w", err)
			}
			if len(logs) == 0 {
				fmt.Println("No weight entries found.")
				return nil
			}
			faint := color.New(color.Faint)
			for _, w := range logs {
				fmt.Printf("%s %.1f %s\n",
					faint.Sprint(w.LogDate.Format("2006-01-02")), w.Weight, w.Unit)
			}
			return nil
		}

		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}
		day := time.Now()
		if weightDate != "" {
			d, err := parseDate(weightDate)
			if err != nil {
				return err
			}
			day = d
		}

		w, err := tracker.LogWeight(cmd.Context(), flagUser, day, value, weightUnit)
		if err != nil {
			return fmt.Errorf("failed to log weight: %w", err)
		}
		color.Green("✓ Logged %.1f %s", w.Weight, w.Unit)
		return nil
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal <name>",
	Short: "Log a meal with calories and macros",
	Long: `Log a meal entry.

Examples:
  fittrack meal "Chicken bowl" --calories 650 --protein 45 --carbs 70 --fat 18
  fittrack meal "Protein shake" --calories 220 --protein 40`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if mealDate != "" {
			d, err := parseDate(mealDate)
			if err != nil {
				return err
			}
			day = d
		}

		m, err := tracker.LogMeal(cmd.Context(), flagUser, &service.MealRequest{
			Date:     day,
			Name:     args[0],
			Calories: mealCalories,
			Protein:  mealProtein,
			Carbs:    mealCarbs,
			Fat:      mealFat,
		})
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}
		color.Green("✓ Logged %s", m.Name)
		fmt.Printf("  %.0f kcal  %.0fP %.0fC %.0fF\n", m.Calories, m.Protein, m.Carbs, m.Fat)
		return nil
	},
}

func init() {
	weightCmd.Flags().StringVar(&weightUnit, "unit", "kg", "weight unit (kg or lb)")
	weightCmd.Flags().StringVar(&weightDate, "date", "", "entry date (YYYY-MM-DD)")
	weightCmd.Flags().IntVarP(&weightLimit, "limit", "n", 20, "max history entries")

	mealCmd.Flags().StringVar(&mealDate, "date", "", "entry date (YYYY-MM-DD)")
	mealCmd.Flags().Float64Var(&mealCalories, "calories", 0, "calories (kcal)")
	mealCmd.Flags().Float64Var(&mealProtein, "protein", 0, "protein (g)")
	mealCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "carbs (g)")
	mealCmd.Flags().Float64Var(&mealFat, "fat", 0, "fat (g)")

	rootCmd.AddCommand(weightCmd)
	rootCmd.AddCommand(mealCmd)
}
