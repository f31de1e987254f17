// ABOUTME: Default sample metrics and the JSON metrics-file loader.
// ABOUTME: Supplies the HealthMetric list the dashboard starts from.
package models

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// history offsets in days before now, oldest first
var sampleOffsets = []int{300, 180, 90, 60, 40, 25, 20, 14, 10, 6, 3, 1, 0}

func scalarSeries(now time.Time, values []float64) []HistoryPoint {
	points := make([]HistoryPoint, 0, len(values))
	for i, v := range values {
		points = append(points, HistoryPoint{
			Date:  now.AddDate(0, 0, -sampleOffsets[i]),
			Value: Scalar(v),
		})
	}
	return points
}

func bpSeries(now time.Time, sys, dia []float64) []HistoryPoint {
	points := make([]HistoryPoint, 0, len(sys))
	for i := range sys {
		points = append(points, HistoryPoint{
			Date:  now.AddDate(0, 0, -sampleOffsets[i]),
			Value: BloodPressure{Systolic: sys[i], Diastolic: dia[i]},
		})
	}
	return points
}

// SampleMetrics returns the default five-metric sample set, anchored at now.
func SampleMetrics(now time.Time) []*HealthMetric {
	return []*HealthMetric{
		{
			ID:           MetricBloodSugar,
			Name:         "قند خون",
			Unit:         "mg/dL",
			CurrentValue: Scalar(112),
			TargetValue:  Range{Min: 70, Max: 100},
			History:      scalarSeries(now, []float64{98, 101, 104, 99, 106, 108, 103, 110, 107, 109, 111, 114, 112}),
			Trend:        TrendIncreasing,
			Status:       StatusWarning,
			LastUpdated:  now,
		},
		{
			ID:           MetricBloodPressure,
			Name:         "فشار خون",
			Unit:         "mmHg",
			CurrentValue: BloodPressure{Systolic: 120, Diastolic: 80},
			TargetValue: BloodPressureTarget{
				Systolic:  Range{Min: 90, Max: 120},
				Diastolic: Range{Min: 60, Max: 80},
			},
			History: bpSeries(now,
				[]float64{122, 121, 119, 120, 118, 121, 120, 119, 121, 120, 118, 119, 120},
				[]float64{81, 80, 79, 80, 78, 81, 80, 79, 80, 80, 79, 80, 80}),
			Trend:       TrendStable,
			Status:      StatusNormal,
			LastUpdated: now,
		},
		{
			ID:           MetricWeight,
			Name:         "وزن",
			Unit:         "کیلوگرم",
			CurrentValue: Scalar(82),
			TargetValue:  TargetScalar(75),
			History:      scalarSeries(now, []float64{88, 87, 86, 85.5, 85, 84.5, 84, 83.6, 83.2, 83, 82.6, 82.3, 82}),
			Trend:        TrendDecreasing,
			Status:       StatusWarning,
			LastUpdated:  now,
		},
		{
			ID:           MetricActivity,
			Name:         "فعالیت بدنی",
			Unit:         "قدم",
			CurrentValue: Scalar(4500),
			TargetValue:  TargetScalar(8000),
			History:      scalarSeries(now, []float64{3000, 3500, 4200, 5100, 3900, 4700, 5200, 4100, 4800, 3600, 5000, 4300, 4500}),
			Trend:        TrendStable,
			Status:       StatusWarning,
			LastUpdated:  now,
		},
		{
			ID:           MetricWater,
			Name:         "مصرف آب",
			Unit:         "لیوان",
			CurrentValue: Scalar(6),
			TargetValue:  TargetScalar(8),
			History:      scalarSeries(now, []float64{4, 4, 5, 5, 6, 5, 6, 7, 6, 6, 7, 6, 6}),
			Trend:        TrendIncreasing,
			Status:       StatusGood,
			LastUpdated:  now,
		},
	}
}

// LoadMetricsFile reads a JSON array of metrics, validating each one and
// sorting its history.
func LoadMetricsFile(path string) ([]*HealthMetric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metrics file: %w", err)
	}

	var metrics []*HealthMetric
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("parse metrics file: %w", err)
	}

	seen := make(map[string]bool, len(metrics))
	for i, m := range metrics {
		if m == nil {
			return nil, fmt.Errorf("metric %d is null", i)
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate metric id: %s", m.ID)
		}
		seen[m.ID] = true
		m.SortHistory()
	}
	return metrics, nil
}
