// ABOUTME: Dashboard task model with category-tagged variants.
// ABOUTME: Tracking, Goal and Future variants carry the category-specific fields.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category tags a task and decides which variant it carries.
type Category string

const (
	CategoryMeasurement Category = "measurement"
	CategoryMedication  Category = "medication"
	CategoryActivity    Category = "activity"
	CategoryNutrition   Category = "nutrition"
	CategoryAppointment Category = "appointment"
	CategoryLifestyle   Category = "lifestyle"
	CategoryGoal        Category = "goal"
	CategoryMental      Category = "mental"
	CategoryOther       Category = "other"
)

// AllCategories lists every valid task category.
var AllCategories = []Category{
	CategoryMeasurement, CategoryMedication, CategoryActivity, CategoryNutrition,
	CategoryLifestyle, CategoryGoal, CategoryMental, CategoryAppointment, CategoryOther,
}

// IsValidCategory checks if a string is a valid task category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IsRecommendation reports whether tasks of this category are goals or recommendations.
func (c Category) IsRecommendation() bool {
	switch c {
	case CategoryNutrition, CategoryActivity, CategoryLifestyle, CategoryGoal, CategoryMental:
		return true
	}
	return false
}

// Priority orders tasks within the same completion state.
type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityOptional Priority = "optional"
)

// Rank returns the sort rank of the priority; unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	case PriorityOptional:
		return 4
	default:
		return 5
	}
}

// IsValidPriority checks if a string is a valid priority.
func IsValidPriority(s string) bool {
	return Priority(s).Rank() < 5
}

// Variant holds the category-specific fields of a task.
type Variant interface {
	isVariant()
}

// Tracking is the variant of measurement tasks.
type Tracking struct {
	MetricID    string
	Frequency   string
	NormalRange string
}

// Goal is the variant of goal and recommendation tasks.
type Goal struct {
	Description string
	ActionText  string
	Link        string
}

// Future is the variant of scheduled tasks (appointments, medication, other).
type Future struct {
	ScheduledTime string
}

func (Tracking) isVariant() {}
func (Goal) isVariant()     {}
func (Future) isVariant()   {}

// Task is a dashboard item with completion state.
type Task struct {
	ID          string
	Title       string
	Category    Category
	Priority    Priority
	IsCompleted bool
	DueDate     *time.Time
	Details     string
	Notes       string
	Variant     Variant
}

// AsTracking returns the tracking fields when the task is a measurement task.
func (t Task) AsTracking() (Tracking, bool) {
	v, ok := t.Variant.(Tracking)
	return v, ok && t.Category == CategoryMeasurement
}

// AsGoal returns the goal fields when the task is a goal or recommendation.
func (t Task) AsGoal() (Goal, bool) {
	v, ok := t.Variant.(Goal)
	return v, ok && t.Category.IsRecommendation()
}

// AsFuture returns the scheduling fields when the task is a future task.
func (t Task) AsFuture() (Future, bool) {
	v, ok := t.Variant.(Future)
	return v, ok && t.Category != CategoryMeasurement && !t.Category.IsRecommendation()
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// CloneTasks copies a task slice element by element.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// Placeholder values for required variant fields a submission left empty.
const (
	PlaceholderMetricID    = "placeholder_metric"
	PlaceholderFrequency   = "روزانه"
	PlaceholderDescription = "توضیحات پیش فرض"
	PlaceholderActionText  = "انجام"
)

// Draft is a task submission: every field except ID and completion state.
type Draft struct {
	Title    string
	Category Category
	Priority Priority
	DueDate  *time.Time
	Details  string
	Notes    string
	Variant  Variant
}

// Normalize fixes the category and priority defaults and builds the variant the
// category requires, filling placeholders for required fields left empty.
func (d Draft) Normalize() Draft {
	if !IsValidCategory(string(d.Category)) {
		d.Category = CategoryOther
	}
	if !IsValidPriority(string(d.Priority)) {
		d.Priority = PriorityMedium
	}
	d.Variant = normalizeVariant(d.Category, d.Variant)
	return d
}

func normalizeVariant(c Category, v Variant) Variant {
	switch {
	case c == CategoryMeasurement:
		tr, _ := v.(Tracking)
		if tr.MetricID == "" {
			tr.MetricID = PlaceholderMetricID
		}
		if tr.Frequency == "" {
			tr.Frequency = PlaceholderFrequency
		}
		return tr
	case c.IsRecommendation():
		g, _ := v.(Goal)
		if g.Description == "" {
			g.Description = PlaceholderDescription
		}
		if g.ActionText == "" {
			g.ActionText = PlaceholderActionText
		}
		return g
	default:
		f, _ := v.(Future)
		return f
	}
}

// NewTask builds an incomplete task with a fresh UUID from a normalized draft.
func NewTask(d Draft) Task {
	d = d.Normalize()
	return Task{
		ID:       uuid.New().String(),
		Title:    d.Title,
		Category: d.Category,
		Priority: d.Priority,
		DueDate:  d.DueDate,
		Details:  d.Details,
		Notes:    d.Notes,
		Variant:  d.Variant,
	}
}

// Merge applies the non-empty fields of d onto t, keeping ID and completion state.
// A category change rebuilds the variant for the new category.
func (t Task) Merge(d Draft) Task {
	out := t.Clone()
	if d.Title != "" {
		out.Title = d.Title
	}
	if IsValidCategory(string(d.Category)) {
		out.Category = d.Category
	}
	if IsValidPriority(string(d.Priority)) {
		out.Priority = d.Priority
	}
	if d.DueDate != nil {
		due := *d.DueDate
		out.DueDate = &due
	}
	if d.Details != "" {
		out.Details = d.Details
	}
	if d.Notes != "" {
		out.Notes = d.Notes
	}
	out.Variant = normalizeVariant(out.Category, mergeVariant(out.Variant, d.Variant))
	return out
}

// mergeVariant overlays the non-empty fields of next onto cur when both are the
// same variant; a different variant replaces cur outright.
func mergeVariant(cur, next Variant) Variant {
	switch n := next.(type) {
	case nil:
		return cur
	case Tracking:
		c, ok := cur.(Tracking)
		if !ok {
			return n
		}
		if n.MetricID != "" {
			c.MetricID = n.MetricID
		}
		if n.Frequency != "" {
			c.Frequency = n.Frequency
		}
		if n.NormalRange != "" {
			c.NormalRange = n.NormalRange
		}
		return c
	case Goal:
		c, ok := cur.(Goal)
		if !ok {
			return n
		}
		if n.Description != "" {
			c.Description = n.Description
		}
		if n.ActionText != "" {
			c.ActionText = n.ActionText
		}
		if n.Link != "" {
			c.Link = n.Link
		}
		return c
	case Future:
		c, ok := cur.(Future)
		if !ok || n.ScheduledTime != "" {
			return n
		}
		return c
	default:
		return cur
	}
}

// WithDueDate sets the due date.
func (t Task) WithDueDate(due time.Time) Task {
	t.DueDate = &due
	return t
}
