// ABOUTME: CLI command for the metric history time range.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/tasks"
)

var rangeCmd = &cobra.Command{
	Use:   "range [week|month|year|all]",
	Short: "Show or set the history time range",
	Long: `Show or set how much metric history the dashboard shows.

EXAMPLES:

  healthdash range         # Print the saved range
  healthdash range month   # Last 30 days`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"week", "month", "year", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, dash.TimeRange())
			return nil
		}

		if err := dash.SetTimeRange(tasks.TimeRange(args[0])); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("✓ Time range: %s", dash.TimeRange()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}
