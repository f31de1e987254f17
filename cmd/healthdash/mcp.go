// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares preferences with the
CLI and 'serve'.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "healthdash": {
        "command": "healthdash",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_tasks          List tasks in a view
  add_task            Create a task
  edit_task           Update a task
  delete_task         Delete a task
  toggle_task         Toggle completion (commits after the undo window)
  undo_toggle         Cancel a pending toggle
  list_metrics        List metrics
  get_metric_history  Metric history in the selected time range
  select_metrics      Choose the dashboard's metrics
  set_time_range      Set the history time range
  list_achievements   List achievements

AVAILABLE RESOURCES:

  dashboard://tasks/today   Today's tasks
  dashboard://metrics       Selected metrics with history
  dashboard://summary       Statuses, task counts and achievements`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(dash)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
