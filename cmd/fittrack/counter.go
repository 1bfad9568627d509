// ABOUTME: CLI commands for the daily step and water counters.
// ABOUTME: Deltas can be negative; the stored amount is clamped at zero.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/spf13/cobra"
)

var counterDate string

var stepsCmd = &cobra.Command{
	Use:   "steps [delta]",
	Short: "Adjust or show today's step count",
	Long: `Adjust the day's step counter by a signed delta, or show it.

The counter never goes below zero: each adjustment is clamped individually.

Examples:
  fittrack steps 2500        # add steps
  fittrack steps -500        # correct a mistake
  fittrack steps             # show today's total`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounter(cmd, args, models.CounterSteps)
	},
}

var waterCmd = &cobra.Command{
	Use:                "water [delta]",
	Short:              "Adjust or show today's water intake (ml)",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCounter(cmd, args, models.CounterWater)
	},
}

// counterArgs is the result of hand-parsing a counter command line.
type counterArgs struct {
	day       time.Time
	delta     int
	haveDelta bool
	user      string
	help      bool
}

// parseCounterArgs parses the raw argument list for steps/water. Flag parsing
// is disabled on these commands so a leading-dash delta like "-500" is not
// rejected as an unknown shorthand flag, which means --date and --user have
// to be recognized here.
func parseCounterArgs(rawArgs []string) (counterArgs, error) {
	out := counterArgs{day: time.Now()}

	for i := 0; i < len(rawArgs); i++ {
		switch arg := rawArgs[i]; {
		case arg == "-h" || arg == "--help":
			out.help = true
			return out, nil
		case arg == "--date":
			i++
			if i >= len(rawArgs) {
				return out, fmt.Errorf("--date requires a value")
			}
			d, err := parseDate(rawArgs[i])
			if err != nil {
				return out, err
			}
			out.day = d
		case strings.HasPrefix(arg, "--date="):
			d, err := parseDate(strings.TrimPrefix(arg, "--date="))
			if err != nil {
				return out, err
			}
			out.day = d
		case arg == "--user" || arg == "-u":
			i++
			if i >= len(rawArgs) {
				return out, fmt.Errorf("%s requires a value", arg)
			}
			out.user = rawArgs[i]
		case strings.HasPrefix(arg, "--user="):
			out.user = strings.TrimPrefix(arg, "--user=")
		case arg == "--verbose" || arg == "-v":
			// Logging is configured before this command runs; nothing to do.
		default:
			if out.haveDelta {
				return out, fmt.Errorf("unexpected argument: %s", arg)
			}
			v, err := strconv.Atoi(arg)
			if err != nil {
				return out, fmt.Errorf("invalid delta: %s", arg)
			}
			out.delta = v
			out.haveDelta = true
		}
	}
	return out, nil
}

func runCounter(cmd *cobra.Command, rawArgs []string, ct models.CounterType) error {
	parsed, err := parseCounterArgs(rawArgs)
	if err != nil {
		return err
	}
	if parsed.help {
		return cmd.Help()
	}
	if parsed.user != "" {
		flagUser = parsed.user
	}

	var cl *models.CounterLog
	switch ct {
	case models.CounterSteps:
		cl, err = tracker.AdjustSteps(cmd.Context(), flagUser, parsed.day, parsed.delta)
	case models.CounterWater:
		cl, err = tracker.AdjustWater(cmd.Context(), flagUser, parsed.day, parsed.delta)
	}
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", ct, err)
	}

	if parsed.delta != 0 {
		color.Green("✓ Adjusted %s by %+d", ct, parsed.delta)
	}
	fmt.Printf("  %s %s: %d %s\n",
		color.New(color.Faint).Sprint(parsed.day.Format("2006-01-02")),
		ct, cl.Amount, models.CounterUnits[ct])
	return nil
}

func init() {
	// Registered for help output only; parseCounterArgs reads --date itself.
	stepsCmd.Flags().StringVar(&counterDate, "date", "", "day to adjust (YYYY-MM-DD)")
	waterCmd.Flags().StringVar(&counterDate, "date", "", "day to adjust (YYYY-MM-DD)")
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(waterCmd)
}
