// ABOUTME: Tests for task sorting, view filters and history filtering.
// ABOUTME: Includes the sort idempotence property over generated lists.
package tasks

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/harperreed/healthdash/internal/models"
)

func due(t time.Time) *time.Time { return &t }

func ids(list []models.Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func TestSortOrder(t *testing.T) {
	list := []models.Task{
		{ID: "done-high", Priority: models.PriorityHigh, IsCompleted: true, DueDate: due(testNow)},
		{ID: "low", Priority: models.PriorityLow, DueDate: due(testNow)},
		{ID: "high-nodue", Priority: models.PriorityHigh},
		{ID: "high-late", Priority: models.PriorityHigh, DueDate: due(testNow.Add(48 * time.Hour))},
		{ID: "high-early", Priority: models.PriorityHigh, DueDate: due(testNow)},
		{ID: "optional", Priority: models.PriorityOptional},
		{ID: "medium", Priority: models.PriorityMedium},
	}

	got := ids(Sort(list))
	want := []string{"high-early", "high-late", "high-nodue", "medium", "low", "optional", "done-high"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort order = %v, want %v", got, want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	list := []models.Task{
		{ID: "b", Priority: models.PriorityLow},
		{ID: "a", Priority: models.PriorityHigh},
	}
	_ = Sort(list)
	if list[0].ID != "b" {
		t.Error("Sort mutated its input")
	}
}

func TestSortIsIdempotent(t *testing.T) {
	priorities := []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow, models.PriorityOptional}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		n := rng.Intn(12)
		list := make([]models.Task, n)
		for i := range list {
			list[i] = models.Task{
				ID:          string(rune('a' + i)),
				Priority:    priorities[rng.Intn(len(priorities))],
				IsCompleted: rng.Intn(2) == 0,
			}
			if rng.Intn(3) > 0 {
				list[i].DueDate = due(testNow.Add(time.Duration(rng.Intn(5)) * 24 * time.Hour))
			}
		}

		once := Sort(list)
		twice := Sort(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("run %d: sort(sort(L)) != sort(L)\n%v\n%v", run, ids(once), ids(twice))
		}
	}
}

func TestDeriveViews(t *testing.T) {
	list := Generate(models.SampleMetrics(testNow), testNow)
	views := Derive(list, testNow)

	if len(views.All) != len(list) {
		t.Errorf("All has %d tasks, want %d", len(views.All), len(list))
	}

	wantToday := map[string]bool{IDBloodSugarMeasure: true, IDActivityGoal: true, IDMedicationReminder: true}
	if len(views.Today) != len(wantToday) {
		t.Errorf("Today = %v", ids(views.Today))
	}
	for _, task := range views.Today {
		if !wantToday[task.ID] {
			t.Errorf("unexpected task %s in Today", task.ID)
		}
	}

	// due exactly now is not strictly after now
	wantUpcoming := []string{IDWeightMeasure, IDBloodPressureMeasure}
	if got := ids(views.Upcoming); !reflect.DeepEqual(got, wantUpcoming) {
		t.Errorf("Upcoming = %v, want %v", got, wantUpcoming)
	}

	for _, task := range views.Measurement {
		if task.Category != models.CategoryMeasurement {
			t.Errorf("non-measurement task %s in Measurement", task.ID)
		}
	}
	if len(views.Measurement) != 3 {
		t.Errorf("Measurement = %v", ids(views.Measurement))
	}

	wantRecs := []string{IDActivityGoal, IDWeightGoal}
	if got := ids(views.Recommendations); !reflect.DeepEqual(got, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", got, wantRecs)
	}
}

func TestFiltersPreserveOrder(t *testing.T) {
	list := []models.Task{
		{ID: "m2", Category: models.CategoryMeasurement},
		{ID: "g", Category: models.CategoryGoal},
		{ID: "m1", Category: models.CategoryMeasurement},
	}
	if got := ids(Measurement(list)); !reflect.DeepEqual(got, []string{"m2", "m1"}) {
		t.Errorf("Measurement = %v", got)
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewAll {
		t.Errorf("ParseView(\"\") = %v, %v", v, err)
	}
	if v, err := ParseView("today"); err != nil || v != ViewToday {
		t.Errorf("ParseView(today) = %v, %v", v, err)
	}
	if _, err := ParseView("tomorrow"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestFilterHistory(t *testing.T) {
	history := []models.HistoryPoint{
		{Date: testNow.AddDate(0, 0, -2), Value: models.Scalar(3)},
		{Date: testNow.AddDate(0, 0, -400), Value: models.Scalar(1)},
		{Date: testNow.AddDate(0, 0, -20), Value: models.Scalar(2)},
		{Date: testNow.AddDate(0, 0, 1), Value: models.Scalar(9)},
		{Date: testNow.AddDate(0, 0, -7), Value: models.Scalar(4)},
	}

	tests := []struct {
		r    TimeRange
		want []float64
	}{
		{RangeWeek, []float64{4, 3}},
		{RangeMonth, []float64{2, 4, 3}},
		{RangeYear, []float64{2, 4, 3}},
		{RangeAll, []float64{3, 1, 2, 9, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			got := FilterHistory(history, tt.r, testNow)
			var values []float64
			for _, p := range got {
				values = append(values, float64(p.Value.(models.Scalar)))
			}
			if !reflect.DeepEqual(values, tt.want) {
				t.Errorf("FilterHistory(%s) = %v, want %v", tt.r, values, tt.want)
			}
		})
	}
}
