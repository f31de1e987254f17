// ABOUTME: CLI command for toggling task completion with an undo window.
// ABOUTME: Waits for the toggle to commit; Ctrl+C before then undoes it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/dashboard"
)

// commitGrace bounds the wait for a commit that won the race against Ctrl+C.
const commitGrace = time.Second

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle", "d"},
	Short:   "Toggle a task's completion",
	Long: `Toggle a task between open and completed.

The change is held for the undo window (5 seconds by default) before it is
saved. Press Ctrl+C during that time to undo it. Toggling a completed task
reopens it.

The task ID is shown in the second column of 'healthdash tasks'.

EXAMPLES:

  healthdash done gen-weight-goal
  healthdash done gen-medication-daily`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !dash.ToggleComplete(id) {
			return fmt.Errorf("task not found: %s", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Toggling %s; press Ctrl+C within %s to undo\n", id, dash.UndoWindow())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return awaitCommit(ctx, out, dash, commits, id)
	},
}

// awaitCommit blocks until the toggle for id commits or ctx ends. An ended ctx
// undoes the toggle if it is still pending.
func awaitCommit(ctx context.Context, w io.Writer, d *dashboard.Dashboard, events <-chan commitEvent, id string) error {
	select {
	case ev := <-events:
		printCommit(w, ev)
		return nil
	case <-ctx.Done():
	}

	if d.Undo(id) {
		fmt.Fprintln(w, color.YellowString("↺ Undone %s", id))
		return nil
	}

	select {
	case ev := <-events:
		printCommit(w, ev)
		return nil
	case <-time.After(commitGrace):
		return fmt.Errorf("toggle for %s neither committed nor undone", id)
	}
}

func printCommit(w io.Writer, ev commitEvent) {
	if ev.completed {
		fmt.Fprintln(w, color.GreenString("✓ Completed %s", ev.id))
		return
	}
	fmt.Fprintln(w, color.YellowString("○ Reopened %s", ev.id))
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
