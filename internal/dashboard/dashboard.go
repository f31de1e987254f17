// ABOUTME: In-memory dashboard state: tasks, metrics and preferences.
// ABOUTME: Completion toggles go through a single-slot undo window before committing.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/prefs"
	"github.com/harperreed/healthdash/internal/tasks"
	"github.com/harperreed/healthdash/internal/undo"
)

var (
	// ErrUnknownMetric is returned when a selection names a metric that does not exist.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInvalidTimeRange is returned for ranges other than week, month, year and all.
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// Dashboard owns the task list and the user's dashboard preferences.
// It is safe for concurrent use; undo commits arrive on timer goroutines.
type Dashboard struct {
	mu           sync.Mutex
	tasks        []models.Task
	metrics      []*models.HealthMetric
	completed    map[string]bool
	selected     []string
	timeRange    tasks.TimeRange
	achievements []models.Achievement

	prefs    *prefs.Store
	undo     *undo.Buffer[[]models.Task]
	clock    undo.Clock
	logger   *log.Logger
	onCommit func(id string, completed bool)
}

type options struct {
	clock    undo.Clock
	window   time.Duration
	logger   *log.Logger
	onCommit func(id string, completed bool)
}

// Option configures a Dashboard.
type Option func(*options)

// WithClock sets the clock used for "now" and the undo timer.
func WithClock(c undo.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithUndoWindow overrides the undo grace period.
func WithUndoWindow(d time.Duration) Option {
	return func(o *options) { o.window = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCommitHook registers a callback invoked after a toggle commits.
func WithCommitHook(f func(id string, completed bool)) Option {
	return func(o *options) { o.onCommit = f }
}

// New builds a dashboard from metrics, generating the task list and seeding
// completion state and preferences from store.
func New(metrics []*models.HealthMetric, store *prefs.Store, opts ...Option) *Dashboard {
	o := options{clock: undo.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	now := o.clock.Now()
	owned := make([]*models.HealthMetric, 0, len(metrics))
	for _, m := range metrics {
		if m == nil {
			o.logger.Warn("skipping nil metric")
			continue
		}
		owned = append(owned, m.Clone())
	}

	completed := store.CompletedTasks()
	list := tasks.Generate(owned, now)
	for i := range list {
		list[i].IsCompleted = completed[list[i].ID]
	}

	return &Dashboard{
		tasks:        list,
		metrics:      owned,
		completed:    completed,
		selected:     store.SelectedMetrics(),
		timeRange:    store.TimeRange(),
		achievements: models.SampleAchievements(now),
		prefs:        store,
		undo:         undo.NewBuffer[[]models.Task](o.clock, o.window),
		clock:        o.clock,
		logger:       o.logger,
		onCommit:     o.onCommit,
	}
}

// Now returns the dashboard clock's current time.
func (d *Dashboard) Now() time.Time {
	return d.clock.Now()
}

// UndoWindow returns the grace period before a toggle commits.
func (d *Dashboard) UndoWindow() time.Duration {
	return d.undo.Window()
}

// Tasks returns a copy of the task list in store order.
func (d *Dashboard) Tasks() []models.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.CloneTasks(d.tasks)
}

// Task returns the task with id.
func (d *Dashboard) Task(id string) (models.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := d.indexLocked(id); i >= 0 {
		return d.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

// Views derives the sorted task views at the current time.
func (d *Dashboard) Views() tasks.Views {
	return tasks.Derive(d.Tasks(), d.clock.Now())
}

// AddTask stores a new incomplete task built from draft and returns it.
func (d *Dashboard) AddTask(draft models.Draft) models.Task {
	task := models.NewTask(draft)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, task)
	return task.Clone()
}

// EditTask merges draft onto the task with id, keeping its ID and completion.
func (d *Dashboard) EditTask(id string, draft models.Draft) (models.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexLocked(id)
	if i < 0 {
		d.logger.Warn("edit: task not found", "id", id)
		return models.Task{}, false
	}
	d.tasks[i] = d.tasks[i].Merge(draft)
	return d.tasks[i].Clone(), true
}

// PatchTask is EditTask for a flat submission that may omit the category.
func (d *Dashboard) PatchTask(id string, w models.TaskWire) (models.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexLocked(id)
	if i < 0 {
		d.logger.Warn("edit: task not found", "id", id)
		return models.Task{}, false
	}
	d.tasks[i] = d.tasks[i].Merge(w.DraftFor(d.tasks[i].Category))
	return d.tasks[i].Clone(), true
}

// DeleteTask removes the task with id and drops it from the completed set.
func (d *Dashboard) DeleteTask(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexLocked(id)
	if i < 0 {
		d.logger.Warn("delete: task not found", "id", id)
		return false
	}
	wasCompleted := d.tasks[i].IsCompleted
	d.tasks = append(d.tasks[:i:i], d.tasks[i+1:]...)

	if wasCompleted || d.completed[id] {
		delete(d.completed, id)
		d.persistCompletedLocked()
	}
	return true
}

// ToggleComplete schedules a completion flip for id. The live task list is
// untouched until the undo window elapses. A newer toggle replaces a pending one.
func (d *Dashboard) ToggleComplete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexLocked(id) < 0 {
		d.logger.Warn("toggle: task not found", "id", id)
		return false
	}
	// held across Schedule so no commit lands between snapshot and schedule;
	// commits take d.mu only after the buffer has released its own lock
	if !d.undo.Schedule(id, models.CloneTasks(d.tasks), d.commitToggle) {
		d.logger.Warn("toggle: dashboard closed", "id", id)
		return false
	}
	return true
}

// Undo cancels the pending toggle for id and restores the task list captured
// when it was scheduled. It reports false when id is not pending.
func (d *Dashboard) Undo(id string) bool {
	snapshot, ok := d.undo.Undo(id)
	if !ok {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = snapshot

	// the completed set always mirrors the restored list
	completed := make(map[string]bool, len(snapshot))
	for _, t := range snapshot {
		if t.IsCompleted {
			completed[t.ID] = true
		}
	}
	if !maps.Equal(completed, d.completed) {
		d.completed = completed
		d.persistCompletedLocked()
	}
	return true
}

// Pending returns the ID of the toggle waiting to commit, if any.
func (d *Dashboard) Pending() (string, bool) {
	return d.undo.Pending()
}

// Close cancels any pending toggle without committing it.
func (d *Dashboard) Close() {
	d.undo.Close()
}

func (d *Dashboard) commitToggle(id string) {
	d.mu.Lock()
	i := d.indexLocked(id)
	if i < 0 {
		d.mu.Unlock()
		d.logger.Warn("commit: task vanished before its toggle committed", "id", id)
		return
	}
	done := !d.tasks[i].IsCompleted
	d.tasks[i].IsCompleted = done
	if done {
		d.completed[id] = true
	} else {
		delete(d.completed, id)
	}
	d.persistCompletedLocked()
	hook := d.onCommit
	d.mu.Unlock()

	d.logger.Debug("toggle committed", "id", id, "completed", done)
	if hook != nil {
		hook(id, done)
	}
}

func (d *Dashboard) persistCompletedLocked() {
	if err := d.prefs.SaveCompletedTasks(d.completed); err != nil {
		d.logger.Error("persist completed tasks", "err", err)
	}
}

func (d *Dashboard) indexLocked(id string) int {
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Metrics returns copies of all metrics.
func (d *Dashboard) Metrics() []*models.HealthMetric {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*models.HealthMetric, len(d.metrics))
	for i, m := range d.metrics {
		out[i] = m.Clone()
	}
	return out
}

// Metric returns a copy of the metric with id.
func (d *Dashboard) Metric(id string) (*models.HealthMetric, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m := d.metricLocked(id); m != nil {
		return m.Clone(), true
	}
	return nil, false
}

// MetricHistory returns the metric's history within the selected time range.
func (d *Dashboard) MetricHistory(id string) ([]models.HistoryPoint, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.metricLocked(id)
	if m == nil {
		return nil, false
	}
	return tasks.FilterHistory(m.History, d.timeRange, d.clock.Now()), true
}

func (d *Dashboard) metricLocked(id string) *models.HealthMetric {
	for _, m := range d.metrics {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// SelectedMetrics returns the metric IDs shown on the dashboard, in order.
func (d *Dashboard) SelectedMetrics() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.selected...)
}

// SetSelectedMetrics replaces the selection and persists it.
func (d *Dashboard) SetSelectedMetrics(ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range ids {
		if d.metricLocked(id) == nil {
			return fmt.Errorf("%w: %s", ErrUnknownMetric, id)
		}
	}
	d.selected = append([]string{}, ids...)
	if err := d.prefs.SaveSelectedMetrics(d.selected); err != nil {
		d.logger.Error("persist selected metrics", "err", err)
	}
	return nil
}

// TimeRange returns the selected history range.
func (d *Dashboard) TimeRange() tasks.TimeRange {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timeRange
}

// SetTimeRange changes the history range and persists it.
func (d *Dashboard) SetTimeRange(r tasks.TimeRange) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeRange, r)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeRange = r
	if err := d.prefs.SaveTimeRange(r); err != nil {
		d.logger.Error("persist time range", "err", err)
	}
	return nil
}

// Achievements returns the read-only achievement list.
func (d *Dashboard) Achievements() []models.Achievement {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Achievement(nil), d.achievements...)
}
