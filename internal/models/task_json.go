// ABOUTME: Flat JSON/YAML wire format for tasks and drafts.
// ABOUTME: The category field is the discriminant for variant-specific fields.
package models

import (
	"encoding/json"
	"time"
)

// TaskWire is the flat serialized form of a task. Variant fields are present
// only for the categories that own them.
type TaskWire struct {
	ID            string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string     `json:"title" yaml:"title"`
	Category      Category   `json:"category" yaml:"category"`
	Priority      Priority   `json:"priority" yaml:"priority"`
	IsCompleted   bool       `json:"isCompleted" yaml:"is_completed"`
	DueDate       *time.Time `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	Details       string     `json:"details,omitempty" yaml:"details,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	MetricID      string     `json:"metricId,omitempty" yaml:"metric_id,omitempty"`
	Frequency     string     `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	NormalRange   string     `json:"normalRange,omitempty" yaml:"normal_range,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	ActionText    string     `json:"actionText,omitempty" yaml:"action_text,omitempty"`
	Link          string     `json:"link,omitempty" yaml:"link,omitempty"`
	ScheduledTime string     `json:"scheduledTime,omitempty" yaml:"scheduled_time,omitempty"`
}

// Wire flattens the task.
func (t Task) Wire() TaskWire {
	w := TaskWire{
		ID:          t.ID,
		Title:       t.Title,
		Category:    t.Category,
		Priority:    t.Priority,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		Details:     t.Details,
		Notes:       t.Notes,
	}
	switch v := t.Variant.(type) {
	case Tracking:
		w.MetricID, w.Frequency, w.NormalRange = v.MetricID, v.Frequency, v.NormalRange
	case Goal:
		w.Description, w.ActionText, w.Link = v.Description, v.ActionText, v.Link
	case Future:
		w.ScheduledTime = v.ScheduledTime
	}
	return w
}

// Draft converts the wire form into a draft, building the variant from the
// fields that belong to its category.
func (w TaskWire) Draft() Draft {
	d := Draft{
		Title:    w.Title,
		Category: w.Category,
		Priority: w.Priority,
		DueDate:  w.DueDate,
		Details:  w.Details,
		Notes:    w.Notes,
	}
	switch {
	case w.Category == CategoryMeasurement:
		d.Variant = Tracking{MetricID: w.MetricID, Frequency: w.Frequency, NormalRange: w.NormalRange}
	case w.Category.IsRecommendation():
		d.Variant = Goal{Description: w.Description, ActionText: w.ActionText, Link: w.Link}
	case IsValidCategory(string(w.Category)):
		d.Variant = Future{ScheduledTime: w.ScheduledTime}
	}
	return d
}

// DraftFor is Draft for a partial update: with no valid category of its own, the
// variant fields are read as belonging to current.
func (w TaskWire) DraftFor(current Category) Draft {
	if IsValidCategory(string(w.Category)) {
		return w.Draft()
	}
	as := w
	as.Category = current
	d := as.Draft()
	d.Category = w.Category
	return d
}

// Task converts the wire form back into a task.
func (w TaskWire) Task() Task {
	d := w.Draft()
	return Task{
		ID:          w.ID,
		Title:       d.Title,
		Category:    d.Category,
		Priority:    d.Priority,
		IsCompleted: w.IsCompleted,
		DueDate:     d.DueDate,
		Details:     d.Details,
		Notes:       d.Notes,
		Variant:     d.Variant,
	}
}

// MarshalJSON encodes the task in its flat wire form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Wire())
}

// UnmarshalJSON decodes a task from its flat wire form.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w TaskWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = w.Task()
	return nil
}

// MarshalYAML encodes the task for YAML export.
func (t Task) MarshalYAML() (any, error) {
	return t.Wire(), nil
}
