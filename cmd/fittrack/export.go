// ABOUTME: CLI command for flat chronological data export.
// ABOUTME: Supports JSON, YAML, and CSV; writes to stdout or a file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as flat chronological rows",
	Long: `Export the user's data as flat rows, oldest first.

Each workout set becomes one row carrying its session's header fields; a
session with no sets still yields one row so it is never silently dropped.

Examples:
  fittrack export                          # JSON to stdout
  fittrack export --format yaml
  fittrack export --format csv -o dump.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := tracker.Export(cmd.Context(), flagUser)
		if err != nil {
			return fmt.Errorf("failed to build export: %w", err)
		}

		var out []byte
		switch exportFormat {
		case "json":
			out, err = data.JSON()
		case "yaml":
			out, err = data.YAML()
		case "csv":
			out, err = data.CSV()
		default:
			return fmt.Errorf("unknown format %q (want json, yaml, or csv)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		color.Green("✓ Exported %d session rows, %d weight rows to %s",
			len(data.Sessions), len(data.Weights), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, yaml, csv)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
