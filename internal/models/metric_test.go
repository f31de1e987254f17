// ABOUTME: Tests for HealthMetric shapes, validation and JSON wire format.
// ABOUTME: Covers scalar vs blood-pressure values, targets, and file loading.
package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSampleMetricsAreValid(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	metrics := SampleMetrics(now)

	if len(metrics) != 5 {
		t.Fatalf("SampleMetrics returned %d metrics, want 5", len(metrics))
	}
	for _, m := range metrics {
		if err := m.Validate(); err != nil {
			t.Errorf("sample metric %s invalid: %v", m.ID, err)
		}
		for i := 1; i < len(m.History); i++ {
			if m.History[i].Date.Before(m.History[i-1].Date) {
				t.Errorf("sample metric %s history not chronological at %d", m.ID, i)
			}
		}
	}
}

func TestValidateShapeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		metric  HealthMetric
		wantErr bool
	}{
		{
			name:   "scalar with range",
			metric: HealthMetric{ID: "x", CurrentValue: Scalar(5), TargetValue: Range{Min: 1, Max: 9}},
		},
		{
			name:   "scalar without target",
			metric: HealthMetric{ID: "x", CurrentValue: Scalar(5)},
		},
		{
			name: "bp with bp target",
			metric: HealthMetric{
				ID:           "bp",
				CurrentValue: BloodPressure{Systolic: 120, Diastolic: 80},
				TargetValue:  BloodPressureTarget{Systolic: Range{Min: 90, Max: 120}, Diastolic: Range{Min: 60, Max: 80}},
			},
		},
		{
			name:    "bp with scalar target",
			metric:  HealthMetric{ID: "bp", CurrentValue: BloodPressure{Systolic: 120, Diastolic: 80}, TargetValue: TargetScalar(120)},
			wantErr: true,
		},
		{
			name:    "scalar with bp target",
			metric:  HealthMetric{ID: "x", CurrentValue: Scalar(1), TargetValue: BloodPressureTarget{}},
			wantErr: true,
		},
		{
			name: "history shape mismatch",
			metric: HealthMetric{
				ID:           "x",
				CurrentValue: Scalar(1),
				History:      []HistoryPoint{{Date: time.Now(), Value: BloodPressure{}}},
			},
			wantErr: true,
		},
		{
			name:    "missing value",
			metric:  HealthMetric{ID: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metric.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMetricJSONShapes(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	bp := SampleMetrics(now)[1]

	data, err := json.Marshal(bp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"currentValue":{"systolic":120,"diastolic":80}`) {
		t.Errorf("unexpected currentValue encoding: %s", s)
	}
	if !strings.Contains(s, `"targetValue":{"systolic":{"min":90,"max":120},"diastolic":{"min":60,"max":80}}`) {
		t.Errorf("unexpected targetValue encoding: %s", s)
	}

	var decoded HealthMetric
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := decoded.CurrentValue.(BloodPressure); !ok {
		t.Errorf("decoded current value is %T, want BloodPressure", decoded.CurrentValue)
	}
	if _, ok := decoded.TargetValue.(BloodPressureTarget); !ok {
		t.Errorf("decoded target is %T, want BloodPressureTarget", decoded.TargetValue)
	}
	if len(decoded.History) != len(bp.History) {
		t.Errorf("history length = %d, want %d", len(decoded.History), len(bp.History))
	}
}

func TestDecodeTargetVariants(t *testing.T) {
	tests := []struct {
		input string
		want  Target
	}{
		{`75`, TargetScalar(75)},
		{`{"min":70,"max":100}`, Range{Min: 70, Max: 100}},
		{`null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := decodeTarget([]byte(tt.input))
			if err != nil {
				t.Fatalf("decodeTarget(%s) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("decodeTarget(%s) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadMetricsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.json")
	content := `[
		{"id":"weight","name":"وزن","unit":"kg","currentValue":80,"targetValue":75,
		 "history":[{"date":"2025-03-10T00:00:00Z","value":81},{"date":"2025-03-01T00:00:00Z","value":82}],
		 "status":"warning","lastUpdated":"2025-03-10T00:00:00Z"}
	]`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	metrics, err := LoadMetricsFile(path)
	if err != nil {
		t.Fatalf("LoadMetricsFile failed: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("got %d metrics, want 1", len(metrics))
	}
	m := metrics[0]
	if v, ok := m.ScalarValue(); !ok || v != 80 {
		t.Errorf("ScalarValue = %v, %v; want 80, true", v, ok)
	}
	if !m.History[0].Date.Before(m.History[1].Date) {
		t.Error("expected history sorted ascending after load")
	}
}

func TestLoadMetricsFileRejectsMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.json")
	content := `[{"id":"bloodPressure","currentValue":{"systolic":120,"diastolic":80},"targetValue":120,"history":[]}]`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadMetricsFile(path); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestLoadMetricsFileRejectsNullEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	if err := os.WriteFile(path, []byte(`[null]`), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := LoadMetricsFile(path)
	if err == nil || !strings.Contains(err.Error(), "metric 0 is null") {
		t.Errorf("LoadMetricsFile([null]) error = %v, want null entry error", err)
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(Scalar(82.5)); got != "82.5" {
		t.Errorf("FormatValue(Scalar) = %q", got)
	}
	if got := FormatValue(BloodPressure{Systolic: 120, Diastolic: 80}); got != "120/80" {
		t.Errorf("FormatValue(BloodPressure) = %q", got)
	}
	if got := FormatTarget(Range{Min: 70, Max: 100}); got != "70-100" {
		t.Errorf("FormatTarget(Range) = %q", got)
	}
}
