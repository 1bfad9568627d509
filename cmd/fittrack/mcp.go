// ABOUTME: CLI command that runs the MCP server over stdio.
// ABOUTME: Tools operate on behalf of the --user principal for the whole session.
package main

import (
	"fmt"

	"github.com/harperreed/fittrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long: `Start the MCP server on stdio for use with MCP-compatible AI assistants.

The server exposes tools for logging workouts, managing plans, adjusting
daily counters, logging weight and meals, and reading the activity feed and
daily summary. All tools act as the --user principal.

Example Claude Desktop config:

  {
    "mcpServers": {
      "fittrack": {
        "command": "fittrack",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewServer(tracker, flagUser)
		if err != nil {
			return fmt.Errorf("failed to create mcp server: %w", err)
		}
		if err := srv.Serve(cmd.Context()); err != nil {
			return fmt.Errorf("mcp server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
