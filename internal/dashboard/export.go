// ABOUTME: Export of the dashboard state.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/tasks"
)

// Snapshot is the full export format for the dashboard.
type Snapshot struct {
	Version         string                 `json:"version" yaml:"version"`
	ExportedAt      time.Time              `json:"exportedAt" yaml:"exported_at"`
	Tool            string                 `json:"tool" yaml:"tool"`
	TimeRange       tasks.TimeRange        `json:"timeRange" yaml:"time_range"`
	SelectedMetrics []string               `json:"selectedMetrics" yaml:"selected_metrics"`
	Metrics         []*models.HealthMetric `json:"metrics" yaml:"metrics"`
	Tasks           []models.Task          `json:"tasks" yaml:"tasks"`
	Achievements    []models.Achievement   `json:"achievements" yaml:"achievements"`
}

// Snapshot captures the current state with tasks in sorted order.
func (d *Dashboard) Snapshot() *Snapshot {
	return &Snapshot{
		Version:         "1.0",
		ExportedAt:      d.clock.Now(),
		Tool:            "healthdash",
		TimeRange:       d.TimeRange(),
		SelectedMetrics: d.SelectedMetrics(),
		Metrics:         d.Metrics(),
		Tasks:           tasks.Sort(d.Tasks()),
		Achievements:    d.Achievements(),
	}
}

// ExportJSON exports the dashboard as indented JSON.
func (d *Dashboard) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(d.Snapshot(), "", "  ")
}

// ExportYAML exports the dashboard as YAML.
func (d *Dashboard) ExportYAML() ([]byte, error) {
	return yaml.Marshal(d.Snapshot())
}

// ExportMarkdown renders metrics and tasks as Markdown tables. Metric history
// is limited to the selected time range.
func (d *Dashboard) ExportMarkdown() string {
	snap := d.Snapshot()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Health Dashboard - %s\n\n", snap.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", snap.ExportedAt.Format(time.RFC3339)))

	sb.WriteString("## Metrics\n\n")
	sb.WriteString("| Metric | Current | Target | Status | Trend |\n")
	sb.WriteString("|--------|---------|--------|--------|-------|\n")
	for _, m := range snap.Metrics {
		sb.WriteString(fmt.Sprintf("| %s | %s %s | %s | %s | %s |\n",
			m.Name, models.FormatValue(m.CurrentValue), m.Unit,
			models.FormatTarget(m.TargetValue), m.Status, m.Trend))
	}
	sb.WriteString("\n")

	for _, id := range snap.SelectedMetrics {
		history, ok := d.MetricHistory(id)
		if !ok || len(history) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", id, snap.TimeRange))
		sb.WriteString("| Date | Value |\n")
		sb.WriteString("|------|-------|\n")
		for _, p := range history {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", p.Date.Format("2006-01-02"), models.FormatValue(p.Value)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Tasks\n\n")
	sb.WriteString("| Done | Priority | Category | Title | Due |\n")
	sb.WriteString("|------|----------|----------|-------|-----|\n")
	for _, t := range snap.Tasks {
		done := " "
		if t.IsCompleted {
			done = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", done, t.Priority, t.Category, t.Title, due))
	}

	return sb.String()
}
