// ABOUTME: Tests for dashboard export formats.
// ABOUTME: Verifies JSON and YAML structure and Markdown tables.
package dashboard

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/healthdash/internal/tasks"
	"github.com/harperreed/healthdash/internal/undo"
)

func TestExportJSON(t *testing.T) {
	f := newFixture(t)
	f.dash.ToggleComplete(tasks.IDWeightGoal)
	f.clock.Advance(undo.DefaultWindow)

	data, err := f.dash.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var out struct {
		Tool      string `json:"tool"`
		TimeRange string `json:"timeRange"`
		Metrics   []struct {
			ID string `json:"id"`
		} `json:"metrics"`
		Tasks []struct {
			ID          string `json:"id"`
			Category    string `json:"category"`
			IsCompleted bool   `json:"isCompleted"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if out.Tool != "healthdash" || out.TimeRange != "week" {
		t.Errorf("header = %+v", out)
	}
	if len(out.Metrics) != 5 || len(out.Tasks) != 6 {
		t.Errorf("exported %d metrics, %d tasks", len(out.Metrics), len(out.Tasks))
	}
	last := out.Tasks[len(out.Tasks)-1]
	if last.ID != tasks.IDWeightGoal || !last.IsCompleted {
		t.Errorf("completed task should sort last, got %+v", last)
	}
}

func TestExportYAML(t *testing.T) {
	f := newFixture(t)

	data, err := f.dash.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	for _, key := range []string{"version", "exported_at", "selected_metrics", "metrics", "tasks", "achievements"} {
		if _, ok := out[key]; !ok {
			t.Errorf("YAML export missing %q", key)
		}
	}
}

func TestExportMarkdown(t *testing.T) {
	f := newFixture(t)
	md := f.dash.ExportMarkdown()

	for _, want := range []string{
		"# Health Dashboard - 2025-03-12",
		"## Metrics",
		"| قند خون | 112 mg/dL | 70-100 | warning | increasing |",
		"| فشار خون | 120/80",
		"### bloodSugar (week)",
		"## Tasks",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "### water") {
		t.Error("unselected metric history exported")
	}
}
