// ABOUTME: Tests for Task variants, draft normalization and merging.
// ABOUTME: Validates placeholder defaults and the flat wire format.
package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityHigh, 1},
		{PriorityMedium, 2},
		{PriorityLow, 3},
		{PriorityOptional, 4},
		{Priority("urgent"), 5},
	}
	for _, tt := range tests {
		if got := tt.priority.Rank(); got != tt.want {
			t.Errorf("%s.Rank() = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestNewTaskFillsPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		check func(t *testing.T, task Task)
	}{
		{
			name:  "measurement without metric",
			draft: Draft{Title: "اندازه‌گیری", Category: CategoryMeasurement},
			check: func(t *testing.T, task Task) {
				tr, ok := task.AsTracking()
				if !ok {
					t.Fatalf("expected tracking variant, got %T", task.Variant)
				}
				if tr.MetricID != PlaceholderMetricID {
					t.Errorf("MetricID = %q, want %q", tr.MetricID, PlaceholderMetricID)
				}
				if tr.Frequency != PlaceholderFrequency {
					t.Errorf("Frequency = %q, want %q", tr.Frequency, PlaceholderFrequency)
				}
			},
		},
		{
			name:  "goal without description",
			draft: Draft{Title: "هدف", Category: CategoryGoal, Priority: PriorityLow},
			check: func(t *testing.T, task Task) {
				g, ok := task.AsGoal()
				if !ok {
					t.Fatalf("expected goal variant, got %T", task.Variant)
				}
				if g.Description != PlaceholderDescription || g.ActionText != PlaceholderActionText {
					t.Errorf("unexpected goal defaults: %+v", g)
				}
				if task.Priority != PriorityLow {
					t.Errorf("Priority = %s, want low", task.Priority)
				}
			},
		},
		{
			name:  "appointment keeps schedule",
			draft: Draft{Title: "ویزیت", Category: CategoryAppointment, Variant: Future{ScheduledTime: "10:30"}},
			check: func(t *testing.T, task Task) {
				f, ok := task.AsFuture()
				if !ok || f.ScheduledTime != "10:30" {
					t.Errorf("AsFuture = %+v, %v", f, ok)
				}
				if _, ok := task.AsTracking(); ok {
					t.Error("appointment must not narrow to tracking")
				}
			},
		},
		{
			name:  "unknown category and priority",
			draft: Draft{Title: "x", Category: "bogus", Priority: "urgent"},
			check: func(t *testing.T, task Task) {
				if task.Category != CategoryOther || task.Priority != PriorityMedium {
					t.Errorf("got category %s priority %s", task.Category, task.Priority)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask(tt.draft)
			if task.ID == "" {
				t.Error("expected ID to be set")
			}
			if task.IsCompleted {
				t.Error("new task must not be completed")
			}
			tt.check(t, task)
		})
	}
}

func TestMergeKeepsIdentityAndVariantFields(t *testing.T) {
	orig := Task{
		ID:          "t1",
		Title:       "قند خون",
		Category:    CategoryMeasurement,
		Priority:    PriorityHigh,
		IsCompleted: true,
		Variant:     Tracking{MetricID: MetricBloodSugar, Frequency: "روزانه"},
	}

	merged := orig.Merge(Draft{Title: "قند خون ناشتا", Variant: Tracking{NormalRange: "70-100"}})

	if merged.ID != "t1" || !merged.IsCompleted {
		t.Errorf("identity not preserved: %+v", merged)
	}
	if merged.Title != "قند خون ناشتا" {
		t.Errorf("Title = %q", merged.Title)
	}
	tr, _ := merged.AsTracking()
	if tr.MetricID != MetricBloodSugar || tr.NormalRange != "70-100" {
		t.Errorf("tracking fields = %+v", tr)
	}
}

func TestMergeCategoryChangeRebuildsVariant(t *testing.T) {
	orig := Task{ID: "t1", Category: CategoryMeasurement, Variant: Tracking{MetricID: "weight", Frequency: "هفتگی"}}

	merged := orig.Merge(Draft{Category: CategoryGoal})

	if _, ok := merged.AsTracking(); ok {
		t.Error("tracking fields must not survive a change to goal")
	}
	g, ok := merged.AsGoal()
	if !ok || g.Description != PlaceholderDescription {
		t.Errorf("AsGoal = %+v, %v", g, ok)
	}
}

func TestTaskJSONOmitsForeignVariantFields(t *testing.T) {
	due := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:       "t1",
		Title:    "پیاده‌روی",
		Category: CategoryGoal,
		Priority: PriorityMedium,
		DueDate:  &due,
		Variant:  Goal{Description: "روزانه ۳۰ دقیقه", ActionText: "شروع"},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "metricId") || strings.Contains(s, "scheduledTime") {
		t.Errorf("foreign variant fields leaked: %s", s)
	}

	var decoded Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	g, ok := decoded.AsGoal()
	if !ok || g.ActionText != "شروع" {
		t.Errorf("decoded goal = %+v, %v", g, ok)
	}
	if decoded.DueDate == nil || !decoded.DueDate.Equal(due) {
		t.Errorf("DueDate = %v", decoded.DueDate)
	}
}

func TestDraftForReadsVariantFieldsOfCurrentCategory(t *testing.T) {
	w := TaskWire{ActionText: "شروع", MetricID: "weight"}

	d := w.DraftFor(CategoryGoal)
	if d.Category != "" {
		t.Errorf("Category = %q, want empty so Merge keeps it", d.Category)
	}
	g, ok := d.Variant.(Goal)
	if !ok || g.ActionText != "شروع" {
		t.Errorf("Variant = %+v", d.Variant)
	}

	w.Category = CategoryMeasurement
	if tr, ok := w.DraftFor(CategoryGoal).Variant.(Tracking); !ok || tr.MetricID != "weight" {
		t.Errorf("explicit category ignored: %+v", tr)
	}
}

func TestCloneTasksIsDeep(t *testing.T) {
	due := time.Now()
	tasks := []Task{{ID: "a", DueDate: &due}}

	cloned := CloneTasks(tasks)
	*cloned[0].DueDate = due.Add(time.Hour)

	if !tasks[0].DueDate.Equal(due) {
		t.Error("clone shares due date pointer with original")
	}
}
