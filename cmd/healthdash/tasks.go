// ABOUTME: CLI command for listing dashboard tasks.
// ABOUTME: Supports the all, today, upcoming, measurement and recommendations views.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/tasks"
)

var tasksView string

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"ls", "t"},
	Short:   "List dashboard tasks",
	Long: `List tasks in one of the dashboard views.

OUTPUT FORMAT:

  Each line shows: [x] ID  PRIORITY  CATEGORY  DUE  TITLE

  Completed tasks sort last; open tasks sort by priority, then due date.

VIEWS:

  all              every task (default)
  today            due today
  upcoming         due later
  measurement      measurement tasks
  recommendations  goals and lifestyle suggestions

EXAMPLES:

  healthdash tasks
  healthdash tasks --view today
  healthdash tasks -v recommendations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := tasks.ParseView(tasksView)
		if err != nil {
			return err
		}
		printTasks(cmd.OutOrStdout(), dash.Views().Select(view))
		return nil
	},
}

func printTasks(w io.Writer, list []models.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	green := color.New(color.FgGreen)
	for _, t := range list {
		check := "[ ]"
		title := truncate(t.Title, 40)
		if t.IsCompleted {
			check = green.Sprint("[x]")
			title = faint.Sprint(title)
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			check,
			faint.Sprint(padRight(t.ID, 28)),
			priorityColor(t.Priority).Sprint(padRight(string(t.Priority), 8)),
			padRight(string(t.Category), 11),
			faint.Sprint(formatDue(t.DueDate)),
			title)
	}
}

func init() {
	tasksCmd.Flags().StringVarP(&tasksView, "view", "v", "", "view: all, today, upcoming, measurement, recommendations")
	rootCmd.AddCommand(tasksCmd)
}
