// ABOUTME: Per-device dashboard preferences persisted through a storage.KV.
// ABOUTME: Reads fall back to defaults on absence or corruption; writes are eager.
package prefs

import (
	"encoding/json"
	"errors"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/storage"
	"github.com/harperreed/healthdash/internal/tasks"
)

// Storage keys.
const (
	KeySelectedMetrics = "dashboard.selectedMetrics"
	KeyTimeRange       = "dashboard.timeRange"
	KeyCompletedTasks  = "dashboard.completedTasks"
)

// DefaultTimeRange is used when nothing valid is stored.
const DefaultTimeRange = tasks.RangeWeek

// DefaultSelectedMetrics returns the metrics shown on a fresh device.
func DefaultSelectedMetrics() []string {
	return []string{models.MetricBloodSugar, models.MetricBloodPressure, models.MetricWeight}
}

// Store reads and writes the three preference slots.
type Store struct {
	kv     storage.KV
	logger *log.Logger
}

// New wraps kv. A nil logger discards diagnostics.
func New(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, logger: logger}
}

// SelectedMetrics returns the stored metric IDs or the default set.
func (s *Store) SelectedMetrics() []string {
	var ids []string
	if !s.load(KeySelectedMetrics, &ids) || ids == nil {
		return DefaultSelectedMetrics()
	}
	return ids
}

// SaveSelectedMetrics persists ids in the given order.
func (s *Store) SaveSelectedMetrics(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.save(KeySelectedMetrics, ids)
}

// TimeRange returns the stored range, or week when absent or unknown.
func (s *Store) TimeRange() tasks.TimeRange {
	var r tasks.TimeRange
	if !s.load(KeyTimeRange, &r) {
		return DefaultTimeRange
	}
	if !r.IsValid() {
		s.logger.Debug("ignoring stored time range", "value", r)
		return DefaultTimeRange
	}
	return r
}

// SaveTimeRange persists r.
func (s *Store) SaveTimeRange(r tasks.TimeRange) error {
	return s.save(KeyTimeRange, r)
}

// CompletedTasks returns the persisted set of completed task IDs.
func (s *Store) CompletedTasks() map[string]bool {
	var ids []string
	set := make(map[string]bool)
	if !s.load(KeyCompletedTasks, &ids) {
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// SaveCompletedTasks persists the set as a sorted array.
func (s *Store) SaveCompletedTasks(set map[string]bool) error {
	ids := make([]string, 0, len(set))
	for id, done := range set {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return s.save(KeyCompletedTasks, ids)
}

// load decodes key into v. It reports false on absence or any failure.
func (s *Store) load(key string, v any) bool {
	data, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("preference read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug("preference is malformed", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(key, data)
}
