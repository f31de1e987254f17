// ABOUTME: CLI command for listing achievements.
// ABOUTME: Earned milestones show their date; open ones are dimmed.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/models"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"a"},
	Short:   "List achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		printAchievements(cmd.OutOrStdout(), dash.Achievements())
		return nil
	},
}

func printAchievements(w io.Writer, list []models.Achievement) {
	green := color.New(color.FgGreen)
	for _, a := range list {
		if a.IsAchieved {
			date := ""
			if a.AchievedDate != nil {
				date = faint.Sprint(" " + a.AchievedDate.Format("2006-01-02"))
			}
			fmt.Fprintf(w, "%s %s%s\n", green.Sprint("★"), a.Title, date)
		} else {
			fmt.Fprintf(w, "%s %s\n", faint.Sprint("☆"), faint.Sprint(a.Title))
		}
		fmt.Fprintf(w, "  %s\n", faint.Sprint(a.Description))
	}
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
}
