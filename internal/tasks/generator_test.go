// ABOUTME: Tests for the rule-based task generator.
// ABOUTME: Covers the default sample scenario and each rule's trigger condition.
package tasks

import (
	"reflect"
	"testing"
	"time"

	"github.com/harperreed/healthdash/internal/models"
)

// Wednesday
var testNow = time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

func findTask(list []models.Task, id string) (models.Task, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func TestGenerateDefaultSamples(t *testing.T) {
	got := Generate(models.SampleMetrics(testNow), testNow)

	if len(got) != 6 {
		t.Fatalf("Generate produced %d tasks, want 6: %+v", len(got), got)
	}

	wantIDs := []string{
		IDBloodSugarMeasure, IDWeightMeasure, IDWeightGoal,
		IDActivityGoal, IDBloodPressureMeasure, IDMedicationReminder,
	}
	for _, id := range wantIDs {
		if _, ok := findTask(got, id); !ok {
			t.Errorf("missing task %s", id)
		}
	}

	seen := map[string]bool{}
	for _, task := range got {
		if seen[task.ID] {
			t.Errorf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
		if task.IsCompleted {
			t.Errorf("task %s generated as completed", task.ID)
		}
	}
}

func TestGenerateBloodSugarWarningEmitsOneHighTask(t *testing.T) {
	got := Generate(models.SampleMetrics(testNow), testNow)

	count := 0
	for _, task := range got {
		tr, ok := task.AsTracking()
		if ok && tr.MetricID == models.MetricBloodSugar {
			count++
			if task.Priority != models.PriorityHigh {
				t.Errorf("blood sugar task priority = %s, want high", task.Priority)
			}
			if tr.Frequency != "روزانه" {
				t.Errorf("blood sugar frequency = %q", tr.Frequency)
			}
			if task.DueDate == nil || !task.DueDate.Equal(testNow) {
				t.Errorf("blood sugar due = %v, want today", task.DueDate)
			}
		}
	}
	if count != 1 {
		t.Errorf("found %d blood sugar tasks, want exactly 1", count)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	metrics := models.SampleMetrics(testNow)
	a := Generate(metrics, testNow)
	b := Generate(metrics, testNow)
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate is not deterministic for identical input")
	}
}

func TestGenerateRulesSkipWhenConditionFalse(t *testing.T) {
	metrics := models.SampleMetrics(testNow)
	for _, m := range metrics {
		switch m.ID {
		case models.MetricBloodSugar:
			m.Status = models.StatusGood
		case models.MetricWeight:
			m.TargetValue = nil
		case models.MetricActivity:
			m.CurrentValue = models.Scalar(9000)
		case models.MetricBloodPressure:
			m.Trend = models.TrendIncreasing
		}
	}

	got := Generate(metrics, testNow)

	if len(got) != 1 {
		t.Fatalf("Generate produced %d tasks, want only the medication reminder: %+v", len(got), got)
	}
	if got[0].ID != IDMedicationReminder || got[0].Priority != models.PriorityHigh {
		t.Errorf("unexpected task %+v", got[0])
	}
}

func TestGenerateActivityDeficit(t *testing.T) {
	metrics := []*models.HealthMetric{{
		ID:           models.MetricActivity,
		Unit:         "قدم",
		CurrentValue: models.Scalar(4500),
		TargetValue:  models.TargetScalar(8000),
	}}

	got := Generate(metrics, testNow)
	task, ok := findTask(got, IDActivityGoal)
	if !ok {
		t.Fatal("expected activity goal task")
	}
	g, ok := task.AsGoal()
	if !ok {
		t.Fatalf("activity task variant = %T", task.Variant)
	}
	if want := "امروز 3500 قدم بیشتر فعالیت کنید تا به هدف روزانه برسید."; g.Description != want {
		t.Errorf("Description = %q, want %q", g.Description, want)
	}
}

func TestGenerateActivityIgnoresRangeTarget(t *testing.T) {
	metrics := []*models.HealthMetric{{
		ID:           models.MetricActivity,
		CurrentValue: models.Scalar(1000),
		TargetValue:  models.Range{Min: 5000, Max: 10000},
	}}

	if _, ok := findTask(Generate(metrics, testNow), IDActivityGoal); ok {
		t.Error("activity rule must only compare numeric targets")
	}
}

func TestGenerateWeeklyTasksDueNextSunday(t *testing.T) {
	got := Generate(models.SampleMetrics(testNow), testNow)
	sunday := time.Date(2025, 3, 16, 9, 30, 0, 0, time.UTC)

	for _, id := range []string{IDWeightMeasure, IDBloodPressureMeasure} {
		task, _ := findTask(got, id)
		if task.DueDate == nil || !task.DueDate.Equal(sunday) {
			t.Errorf("%s due = %v, want %v", id, task.DueDate, sunday)
		}
	}
}

func TestNextSunday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"wednesday", time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 23, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSunday(tt.now); !got.Equal(tt.want) {
				t.Errorf("NextSunday(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
