// ABOUTME: CLI command for choosing the dashboard's metrics.
// ABOUTME: Saves the selection in display order, or shows it when called without IDs.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var selectClear bool

var selectCmd = &cobra.Command{
	Use:   "select [ids...]",
	Short: "Choose which metrics the dashboard shows",
	Long: `Choose which metrics the dashboard shows, in display order.

Without arguments the current selection is printed. The selection is saved
and shared with 'serve' and 'mcp'.

METRIC IDS:

  bloodSugar, bloodPressure, weight, activity, water

EXAMPLES:

  healthdash select                           # Show the current selection
  healthdash select bloodSugar weight water   # Show three metrics
  healthdash select --clear                   # Show none`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 && !selectClear {
			fmt.Fprintln(out, formatSelection(dash.SelectedMetrics()))
			return nil
		}

		if selectClear {
			args = []string{}
		}
		if err := dash.SetSelectedMetrics(args); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenString("✓ Selected: %s", formatSelection(dash.SelectedMetrics())))
		return nil
	},
}

func formatSelection(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}

func init() {
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "select no metrics")
	rootCmd.AddCommand(selectCmd)
}
