// ABOUTME: JSON and YAML wire format for HealthMetric and HistoryPoint.
// ABOUTME: Values are a number or {systolic,diastolic}; targets add {min,max}.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type historyPointWire struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value any       `json:"value" yaml:"value"`
}

type metricWire struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Unit         string             `json:"unit" yaml:"unit"`
	CurrentValue any                `json:"currentValue" yaml:"current_value"`
	TargetValue  any                `json:"targetValue,omitempty" yaml:"target_value,omitempty"`
	History      []historyPointWire `json:"history" yaml:"history"`
	Trend        Trend              `json:"trend,omitempty" yaml:"trend,omitempty"`
	Status       Status             `json:"status,omitempty" yaml:"status,omitempty"`
	LastUpdated  time.Time          `json:"lastUpdated" yaml:"last_updated"`
}

func valueWire(v Value) any {
	switch val := v.(type) {
	case Scalar:
		return float64(val)
	case BloodPressure:
		return val
	default:
		return nil
	}
}

func targetWire(t Target) any {
	switch val := t.(type) {
	case TargetScalar:
		return float64(val)
	case Range, BloodPressureTarget:
		return val
	default:
		return nil
	}
}

func (m HealthMetric) wire() metricWire {
	w := metricWire{
		ID:           m.ID,
		Name:         m.Name,
		Unit:         m.Unit,
		CurrentValue: valueWire(m.CurrentValue),
		TargetValue:  targetWire(m.TargetValue),
		History:      make([]historyPointWire, 0, len(m.History)),
		Trend:        m.Trend,
		Status:       m.Status,
		LastUpdated:  m.LastUpdated,
	}
	for _, p := range m.History {
		w.History = append(w.History, historyPointWire{Date: p.Date, Value: valueWire(p.Value)})
	}
	return w
}

// MarshalJSON encodes the metric in the dashboard wire format.
func (m HealthMetric) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// MarshalYAML encodes the metric for YAML export.
func (m HealthMetric) MarshalYAML() (any, error) {
	return m.wire(), nil
}

// MarshalJSON encodes the point as {date, value}.
func (p HistoryPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyPointWire{Date: p.Date, Value: valueWire(p.Value)})
}

// UnmarshalJSON decodes a {date, value} point.
func (p *HistoryPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date  time.Time       `json:"date"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := decodeValue(raw.Value)
	if err != nil {
		return fmt.Errorf("history value: %w", err)
	}
	p.Date = raw.Date
	p.Value = v
	return nil
}

// UnmarshalJSON decodes a metric from the dashboard wire format.
func (m *HealthMetric) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Unit         string          `json:"unit"`
		CurrentValue json.RawMessage `json:"currentValue"`
		TargetValue  json.RawMessage `json:"targetValue"`
		History      []HistoryPoint  `json:"history"`
		Trend        Trend           `json:"trend"`
		Status       Status          `json:"status"`
		LastUpdated  time.Time       `json:"lastUpdated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	current, err := decodeValue(raw.CurrentValue)
	if err != nil {
		return fmt.Errorf("metric %s current value: %w", raw.ID, err)
	}
	target, err := decodeTarget(raw.TargetValue)
	if err != nil {
		return fmt.Errorf("metric %s target value: %w", raw.ID, err)
	}

	*m = HealthMetric{
		ID:           raw.ID,
		Name:         raw.Name,
		Unit:         raw.Unit,
		CurrentValue: current,
		TargetValue:  target,
		History:      raw.History,
		Trend:        raw.Trend,
		Status:       raw.Status,
		LastUpdated:  raw.LastUpdated,
	}
	return nil
}

func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeValue(data []byte) (Value, error) {
	if isNull(data) {
		return nil, fmt.Errorf("missing value")
	}
	if isObject(data) {
		var bp BloodPressure
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, err
		}
		return bp, nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return Scalar(f), nil
}

func decodeTarget(data []byte) (Target, error) {
	if isNull(data) {
		return nil, nil
	}
	if !isObject(data) {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return TargetScalar(f), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, ok := probe["systolic"]; ok {
		var bp BloodPressureTarget
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, err
		}
		return bp, nil
	}
	var r Range
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r, nil
}
