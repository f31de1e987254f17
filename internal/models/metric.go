// ABOUTME: HealthMetric model with scalar and blood-pressure value shapes.
// ABOUTME: Defines metric IDs, targets, history points, trend and status.
package models

import (
	"fmt"
	"sort"
	"time"
)

// Well-known metric IDs used by the task generator.
const (
	MetricBloodSugar    = "bloodSugar"
	MetricBloodPressure = "bloodPressure"
	MetricWeight        = "weight"
	MetricActivity      = "activity"
	MetricWater         = "water"
)

// Trend describes the direction of a metric over its recent history.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Status is the assessment of a metric's current value.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusNormal  Status = "normal"
)

// Value is a metric reading: either a Scalar or a BloodPressure pair.
type Value interface {
	isValue()
}

// Scalar is a single numeric reading.
type Scalar float64

// BloodPressure is a systolic/diastolic reading.
type BloodPressure struct {
	Systolic  float64 `json:"systolic" yaml:"systolic"`
	Diastolic float64 `json:"diastolic" yaml:"diastolic"`
}

func (Scalar) isValue()        {}
func (BloodPressure) isValue() {}

// Target is a metric goal: a TargetScalar, a Range, or a BloodPressureTarget.
type Target interface {
	isTarget()
}

// TargetScalar is a single numeric goal.
type TargetScalar float64

// Range is an inclusive numeric band.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// BloodPressureTarget holds separate bands for systolic and diastolic values.
type BloodPressureTarget struct {
	Systolic  Range `json:"systolic" yaml:"systolic"`
	Diastolic Range `json:"diastolic" yaml:"diastolic"`
}

func (TargetScalar) isTarget()        {}
func (Range) isTarget()               {}
func (BloodPressureTarget) isTarget() {}

// HistoryPoint is an immutable recorded reading.
type HistoryPoint struct {
	Date  time.Time
	Value Value
}

// HealthMetric is a tracked health quantity with its target and history.
type HealthMetric struct {
	ID           string
	Name         string
	Unit         string
	CurrentValue Value
	TargetValue  Target // nil when the metric has no goal
	History      []HistoryPoint
	Trend        Trend
	Status       Status
	LastUpdated  time.Time
}

// Validate checks that the current value, target and history share a shape.
func (m *HealthMetric) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("metric id is required")
	}
	if m.CurrentValue == nil {
		return fmt.Errorf("metric %s: current value is required", m.ID)
	}

	_, isBP := m.CurrentValue.(BloodPressure)
	if m.TargetValue != nil {
		_, targetBP := m.TargetValue.(BloodPressureTarget)
		if isBP != targetBP {
			return fmt.Errorf("metric %s: target shape does not match current value", m.ID)
		}
	}

	for i, p := range m.History {
		if p.Value == nil {
			return fmt.Errorf("metric %s: history point %d has no value", m.ID, i)
		}
		if _, pointBP := p.Value.(BloodPressure); pointBP != isBP {
			return fmt.Errorf("metric %s: history point %d shape does not match current value", m.ID, i)
		}
	}
	return nil
}

// ScalarValue returns the current value as a float when it is a Scalar.
func (m *HealthMetric) ScalarValue() (float64, bool) {
	v, ok := m.CurrentValue.(Scalar)
	return float64(v), ok
}

// ScalarTarget returns the target as a float when it is a TargetScalar.
func (m *HealthMetric) ScalarTarget() (float64, bool) {
	v, ok := m.TargetValue.(TargetScalar)
	return float64(v), ok
}

// SortHistory orders the history chronologically (stable for equal dates).
func (m *HealthMetric) SortHistory() {
	sort.SliceStable(m.History, func(i, j int) bool {
		return m.History[i].Date.Before(m.History[j].Date)
	})
}

// Clone returns a deep copy of the metric.
func (m *HealthMetric) Clone() *HealthMetric {
	c := *m
	c.History = append([]HistoryPoint(nil), m.History...)
	return &c
}

// FormatValue renders a value for display.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Scalar:
		return fmt.Sprintf("%g", float64(val))
	case BloodPressure:
		return fmt.Sprintf("%g/%g", val.Systolic, val.Diastolic)
	default:
		return "-"
	}
}

// FormatTarget renders a target for display.
func FormatTarget(t Target) string {
	switch val := t.(type) {
	case TargetScalar:
		return fmt.Sprintf("%g", float64(val))
	case Range:
		return fmt.Sprintf("%g-%g", val.Min, val.Max)
	case BloodPressureTarget:
		return fmt.Sprintf("%g-%g/%g-%g", val.Systolic.Min, val.Systolic.Max, val.Diastolic.Min, val.Diastolic.Max)
	default:
		return "-"
	}
}
