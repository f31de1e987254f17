// ABOUTME: View derivation over the live task list and metric history.
// ABOUTME: Sorting plus today/upcoming/measurement/recommendation filters.
package tasks

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/healthdash/internal/models"
)

// Sort returns a sorted copy: incomplete first, then priority rank, then due
// date ascending with undated tasks last. The sort is stable.
func Sort(list []models.Task) []models.Task {
	out := append([]models.Task(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b models.Task) bool {
	if a.IsCompleted != b.IsCompleted {
		return !a.IsCompleted
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return false
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}

func filter(list []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Today keeps tasks due on now's calendar day.
func Today(list []models.Task, now time.Time) []models.Task {
	y, m, d := now.Date()
	return filter(list, func(t models.Task) bool {
		if t.DueDate == nil {
			return false
		}
		ty, tm, td := t.DueDate.In(now.Location()).Date()
		return ty == y && tm == m && td == d
	})
}

// Upcoming keeps tasks due strictly after now.
func Upcoming(list []models.Task, now time.Time) []models.Task {
	return filter(list, func(t models.Task) bool {
		return t.DueDate != nil && t.DueDate.After(now)
	})
}

// Measurement keeps measurement tasks.
func Measurement(list []models.Task) []models.Task {
	return filter(list, func(t models.Task) bool {
		return t.Category == models.CategoryMeasurement
	})
}

// Recommendations keeps goal and recommendation tasks.
func Recommendations(list []models.Task) []models.Task {
	return filter(list, func(t models.Task) bool {
		return t.Category.IsRecommendation()
	})
}

// View names a derived task list.
type View string

const (
	ViewAll             View = "all"
	ViewToday           View = "today"
	ViewUpcoming        View = "upcoming"
	ViewMeasurement     View = "measurement"
	ViewRecommendations View = "recommendations"
)

// AllViews lists the valid view names.
var AllViews = []View{ViewAll, ViewToday, ViewUpcoming, ViewMeasurement, ViewRecommendations}

// ParseView validates a view name; empty means all.
func ParseView(s string) (View, error) {
	if s == "" {
		return ViewAll, nil
	}
	for _, v := range AllViews {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view: %s", s)
}

// Views holds every derived list, each in sorted order.
type Views struct {
	All             []models.Task `json:"all"`
	Today           []models.Task `json:"today"`
	Upcoming        []models.Task `json:"upcoming"`
	Measurement     []models.Task `json:"measurement"`
	Recommendations []models.Task `json:"recommendations"`
}

// Derive sorts the list once and builds every view from it.
func Derive(list []models.Task, now time.Time) Views {
	sorted := Sort(list)
	return Views{
		All:             sorted,
		Today:           Today(sorted, now),
		Upcoming:        Upcoming(sorted, now),
		Measurement:     Measurement(sorted),
		Recommendations: Recommendations(sorted),
	}
}

// Select returns the named view.
func (v Views) Select(name View) []models.Task {
	switch name {
	case ViewToday:
		return v.Today
	case ViewUpcoming:
		return v.Upcoming
	case ViewMeasurement:
		return v.Measurement
	case ViewRecommendations:
		return v.Recommendations
	default:
		return v.All
	}
}

// TimeRange selects how much metric history to show.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// IsValid reports whether r is one of the known ranges.
func (r TimeRange) IsValid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return true
	}
	return false
}

// Start returns the earliest instant the range includes.
func (r TimeRange) Start(now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// FilterHistory returns the points dated within [now-window, now] in ascending
// order. RangeAll returns the whole history unfiltered.
func FilterHistory(history []models.HistoryPoint, r TimeRange, now time.Time) []models.HistoryPoint {
	if r == RangeAll || !r.IsValid() {
		return append([]models.HistoryPoint(nil), history...)
	}

	start := r.Start(now)
	out := make([]models.HistoryPoint, 0, len(history))
	for _, p := range history {
		if !p.Date.Before(start) && !p.Date.After(now) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
