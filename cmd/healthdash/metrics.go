// ABOUTME: CLI command for showing health metrics.
// ABOUTME: Prints every metric and the history of the selected ones for a time range.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/dashboard"
	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/tasks"
)

var metricsRange string

var metricsCmd = &cobra.Command{
	Use:     "metrics",
	Aliases: []string{"m"},
	Short:   "Show health metrics",
	Long: `Show every health metric with its current value, target, status and trend,
followed by the history of the metrics selected for the dashboard.

OUTPUT FORMAT:

  Each metric line shows: * ID  NAME  CURRENT  TARGET  STATUS  TREND

  A * marks metrics selected with 'healthdash select'.

TIME RANGE:

  History uses the saved range ('healthdash range') unless --range is given:
    week, month, year, all

EXAMPLES:

  healthdash metrics               # Saved time range
  healthdash metrics --range year  # One-off yearly view`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := dash.TimeRange()
		if metricsRange != "" {
			r = tasks.TimeRange(metricsRange)
			if !r.IsValid() {
				return fmt.Errorf("invalid time range: %s (use week, month, year, or all)", metricsRange)
			}
		}
		printMetrics(cmd.OutOrStdout(), dash, r)
		return nil
	},
}

func printMetrics(w io.Writer, d *dashboard.Dashboard, r tasks.TimeRange) {
	selected := make(map[string]bool)
	for _, id := range d.SelectedMetrics() {
		selected[id] = true
	}

	for _, m := range d.Metrics() {
		mark := " "
		if selected[m.ID] {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s %s\n",
			mark,
			faint.Sprint(padRight(m.ID, 14)),
			padRight(m.Name, 16),
			padRight(models.FormatValue(m.CurrentValue)+" "+m.Unit, 18),
			faint.Sprint(padRight("target "+models.FormatTarget(m.TargetValue), 18)),
			statusColor(m.Status).Sprint(padRight(string(m.Status), 8)),
			trendArrow(m.Trend))
	}

	now := d.Now()
	for _, id := range d.SelectedMetrics() {
		m, ok := d.Metric(id)
		if !ok {
			continue
		}
		history := tasks.FilterHistory(m.History, r, now)
		fmt.Fprintf(w, "\n%s (%s)\n", m.Name, r)
		if len(history) == 0 {
			fmt.Fprintln(w, faint.Sprint("  No readings in this range."))
			continue
		}
		for _, p := range history {
			fmt.Fprintf(w, "  %s  %s\n", faint.Sprint(p.Date.Format("2006-01-02")), models.FormatValue(p.Value))
		}
	}
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsRange, "range", "r", "", "history range: week, month, year, all")
	rootCmd.AddCommand(metricsCmd)
}
