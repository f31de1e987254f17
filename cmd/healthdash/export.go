// ABOUTME: CLI command for exporting the dashboard.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/dashboard"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard",
	Long: `Export metrics, tasks, achievements and preferences.

FORMATS:

  json       Full JSON snapshot (default)
  yaml       YAML snapshot (human-readable)
  markdown   Markdown tables (for documentation/sharing)

Markdown includes history tables only for the selected metrics, within the
saved time range.

EXAMPLES:

  healthdash export                          # JSON to stdout
  healthdash export -o snapshot.json         # Save to file
  healthdash export --format yaml
  healthdash export -f markdown -o report.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := renderExport(dash, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported to %s", exportOutput))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func renderExport(d *dashboard.Dashboard, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = d.ExportJSON()
	case "yaml":
		data, err = d.ExportYAML()
	case "markdown", "md":
		data = []byte(d.ExportMarkdown())
	default:
		return nil, fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}
	return data, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, yaml, or markdown")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
