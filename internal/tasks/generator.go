// ABOUTME: Rule-based task generator mapping health metrics to dashboard tasks.
// ABOUTME: Each rule emits at most one task; absent conditions emit nothing.
package tasks

import (
	"fmt"
	"time"

	"github.com/harperreed/healthdash/internal/models"
)

// Generated task IDs. They are stable so completion state survives restarts.
const (
	IDBloodSugarMeasure    = "gen-bloodSugar-measure"
	IDWeightMeasure        = "gen-weight-measure"
	IDWeightGoal           = "gen-weight-goal"
	IDActivityGoal         = "gen-activity-goal"
	IDBloodPressureMeasure = "gen-bloodPressure-measure"
	IDMedicationReminder   = "gen-medication-daily"
)

// Generate derives the personalized task list from metrics. Output depends only
// on metrics and now.
func Generate(metrics []*models.HealthMetric, now time.Time) []models.Task {
	byID := make(map[string]*models.HealthMetric, len(metrics))
	for _, m := range metrics {
		if m != nil {
			byID[m.ID] = m
		}
	}

	var out []models.Task

	if m := byID[models.MetricBloodSugar]; m != nil && m.Status == models.StatusWarning {
		out = append(out, models.Task{
			ID:       IDBloodSugarMeasure,
			Title:    "اندازه‌گیری قند خون ناشتا",
			Category: models.CategoryMeasurement,
			Priority: models.PriorityHigh,
			Details:  "قند خون شما بالاتر از محدوده هدف است. صبح‌ها قبل از صبحانه اندازه‌گیری کنید.",
			Variant: models.Tracking{
				MetricID:    m.ID,
				Frequency:   "روزانه",
				NormalRange: normalRange(m),
			},
		}.WithDueDate(now))
	}

	if m := byID[models.MetricWeight]; m != nil && m.TargetValue != nil && m.Status == models.StatusWarning {
		sunday := NextSunday(now)
		out = append(out, models.Task{
			ID:       IDWeightMeasure,
			Title:    "اندازه‌گیری وزن",
			Category: models.CategoryMeasurement,
			Priority: models.PriorityMedium,
			Variant: models.Tracking{
				MetricID:  m.ID,
				Frequency: "هفتگی",
			},
		}.WithDueDate(sunday))
		out = append(out, models.Task{
			ID:       IDWeightGoal,
			Title:    "رسیدن به وزن هدف",
			Category: models.CategoryGoal,
			Priority: models.PriorityMedium,
			Variant: models.Goal{
				Description: fmt.Sprintf("وزن فعلی %s %s، وزن هدف %s %s.",
					models.FormatValue(m.CurrentValue), m.Unit, models.FormatTarget(m.TargetValue), m.Unit),
				ActionText: "مشاهده برنامه غذایی",
			},
		})
	}

	if m := byID[models.MetricActivity]; m != nil {
		current, okCur := m.ScalarValue()
		target, okTarget := m.ScalarTarget()
		if okCur && okTarget && current < target {
			out = append(out, models.Task{
				ID:       IDActivityGoal,
				Title:    "افزایش فعالیت روزانه",
				Category: models.CategoryGoal,
				Priority: models.PriorityMedium,
				Variant: models.Goal{
					Description: fmt.Sprintf("امروز %g %s بیشتر فعالیت کنید تا به هدف روزانه برسید.", target-current, m.Unit),
					ActionText:  "شروع پیاده‌روی",
				},
			}.WithDueDate(now))
		}
	}

	if m := byID[models.MetricBloodPressure]; m != nil && m.Status == models.StatusNormal && m.Trend == models.TrendStable {
		out = append(out, models.Task{
			ID:       IDBloodPressureMeasure,
			Title:    "یادآوری اندازه‌گیری فشار خون",
			Category: models.CategoryMeasurement,
			Priority: models.PriorityLow,
			Variant: models.Tracking{
				MetricID:    m.ID,
				Frequency:   "هفتگی",
				NormalRange: normalRange(m),
			},
		}.WithDueDate(NextSunday(now)))
	}

	out = append(out, models.Task{
		ID:       IDMedicationReminder,
		Title:    "مصرف داروی روزانه",
		Category: models.CategoryMedication,
		Priority: models.PriorityHigh,
		Details:  "متفورمین را بعد از صبحانه و شام مصرف کنید.",
		Variant:  models.Future{ScheduledTime: "روزانه"},
	}.WithDueDate(now))

	return out
}

func normalRange(m *models.HealthMetric) string {
	if m.TargetValue == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", models.FormatTarget(m.TargetValue), m.Unit)
}

// NextSunday returns the same clock time on the first Sunday strictly after now.
func NextSunday(now time.Time) time.Time {
	days := (7 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
