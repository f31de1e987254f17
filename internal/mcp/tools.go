// ABOUTME: MCP tool implementations for the health dashboard.
// ABOUTME: Task CRUD with undo-window toggles, metric history and preferences.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/tasks"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List dashboard tasks in one view: all, today, upcoming, measurement or recommendations",
	}, s.handleListTasks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_task",
		Description: "Create a task; missing category-specific fields get placeholder defaults",
	}, s.handleAddTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_task",
		Description: "Update the non-empty fields of an existing task",
	}, s.handleEditTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID",
	}, s.handleDeleteTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Toggle a task's completion; the change commits after the undo window",
	}, s.handleToggleTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "undo_toggle",
		Description: "Cancel the pending completion toggle for a task",
	}, s.handleUndoToggle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List health metrics with current value, target, status and trend",
	}, s.handleListMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_metric_history",
		Description: "Get a metric's history within the selected time range",
	}, s.handleGetMetricHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "select_metrics",
		Description: "Choose which metrics the dashboard shows, in order",
	}, s.handleSelectMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_time_range",
		Description: "Set the history time range (week, month, year, all)",
	}, s.handleSetTimeRange)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_achievements",
		Description: "List achievements and milestones",
	}, s.handleListAchievements)
}

// Tool input/output types

type listTasksInput struct {
	View string `json:"view,omitempty" jsonschema:"View name: all (default), today, upcoming, measurement, recommendations"`
}

type listTasksOutput struct {
	View  string     `json:"view"`
	Tasks []taskView `json:"tasks"`
}

// taskView is the tool-facing task shape; dates are RFC 3339 strings.
type taskView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	IsCompleted   bool   `json:"is_completed"`
	DueDate       string `json:"due_date,omitempty"`
	Details       string `json:"details,omitempty"`
	Notes         string `json:"notes,omitempty"`
	MetricID      string `json:"metric_id,omitempty"`
	Frequency     string `json:"frequency,omitempty"`
	NormalRange   string `json:"normal_range,omitempty"`
	Description   string `json:"description,omitempty"`
	ActionText    string `json:"action_text,omitempty"`
	Link          string `json:"link,omitempty"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
}

func viewOf(t models.Task) taskView {
	w := t.Wire()
	v := taskView{
		ID:            w.ID,
		Title:         w.Title,
		Category:      string(w.Category),
		Priority:      string(w.Priority),
		IsCompleted:   w.IsCompleted,
		Details:       w.Details,
		Notes:         w.Notes,
		MetricID:      w.MetricID,
		Frequency:     w.Frequency,
		NormalRange:   w.NormalRange,
		Description:   w.Description,
		ActionText:    w.ActionText,
		Link:          w.Link,
		ScheduledTime: w.ScheduledTime,
	}
	if w.DueDate != nil {
		v.DueDate = w.DueDate.Format(time.RFC3339)
	}
	return v
}

type taskInput struct {
	ID            string `json:"id,omitempty" jsonschema:"Task ID (edit_task only)"`
	Title         string `json:"title,omitempty" jsonschema:"Task title"`
	Category      string `json:"category,omitempty" jsonschema:"One of measurement, nutrition, activity, lifestyle, goal, mental, appointment, medication, other"`
	Priority      string `json:"priority,omitempty" jsonschema:"One of high, medium, low, optional"`
	DueDate       string `json:"due_date,omitempty" jsonschema:"Due date (ISO 8601 or YYYY-MM-DD)"`
	Details       string `json:"details,omitempty" jsonschema:"Details"`
	Notes         string `json:"notes,omitempty" jsonschema:"Notes"`
	MetricID      string `json:"metric_id,omitempty" jsonschema:"Metric to measure (measurement tasks)"`
	Frequency     string `json:"frequency,omitempty" jsonschema:"Measurement frequency (measurement tasks)"`
	NormalRange   string `json:"normal_range,omitempty" jsonschema:"Normal range text (measurement tasks)"`
	Description   string `json:"description,omitempty" jsonschema:"Recommendation text (goal tasks)"`
	ActionText    string `json:"action_text,omitempty" jsonschema:"Call-to-action label (goal tasks)"`
	Link          string `json:"link,omitempty" jsonschema:"Related link (goal tasks)"`
	ScheduledTime string `json:"scheduled_time,omitempty" jsonschema:"Scheduled time of day (appointments, medication)"`
}

type taskIDInput struct {
	ID string `json:"id" jsonschema:"Task ID"`
}

type taskOutput struct {
	Task    taskView `json:"task"`
	Message string   `json:"message"`
}

type toggleOutput struct {
	ID                string  `json:"id"`
	UndoWindowSeconds float64 `json:"undo_window_seconds"`
	Message           string  `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type metricIDInput struct {
	ID string `json:"id" jsonschema:"Metric ID (bloodSugar, bloodPressure, weight, activity, water)"`
}

type selectMetricsInput struct {
	IDs []string `json:"ids" jsonschema:"Metric IDs to show, in display order"`
}

type setTimeRangeInput struct {
	Range string `json:"range" jsonschema:"week, month, year or all"`
}

type preferencesOutput struct {
	SelectedMetrics []string `json:"selected_metrics"`
	TimeRange       string   `json:"time_range"`
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q", s)
	}
	return &t, nil
}

func (in taskInput) draft() (models.Draft, error) {
	w, err := in.wire()
	if err != nil {
		return models.Draft{}, err
	}
	return w.Draft(), nil
}

func (in taskInput) wire() (models.TaskWire, error) {
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return models.TaskWire{}, err
	}
	return models.TaskWire{
		Title:         in.Title,
		Category:      models.Category(in.Category),
		Priority:      models.Priority(in.Priority),
		DueDate:       due,
		Details:       in.Details,
		Notes:         in.Notes,
		MetricID:      in.MetricID,
		Frequency:     in.Frequency,
		NormalRange:   in.NormalRange,
		Description:   in.Description,
		ActionText:    in.ActionText,
		Link:          in.Link,
		ScheduledTime: in.ScheduledTime,
	}, nil
}

// Tool handlers

func (s *Server) handleListTasks(ctx context.Context, req *mcp.CallToolRequest, input listTasksInput) (*mcp.CallToolResult, listTasksOutput, error) {
	view, err := tasks.ParseView(input.View)
	if err != nil {
		return nil, listTasksOutput{}, err
	}

	list := s.dash.Views().Select(view)
	out := listTasksOutput{View: string(view), Tasks: make([]taskView, 0, len(list))}
	for _, t := range list {
		out.Tasks = append(out.Tasks, viewOf(t))
	}
	return nil, out, nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input taskInput) (*mcp.CallToolResult, taskOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, taskOutput{}, fmt.Errorf("title is required")
	}
	d, err := input.draft()
	if err != nil {
		return nil, taskOutput{}, err
	}

	task := s.dash.AddTask(d)
	return nil, taskOutput{
		Task:    viewOf(task),
		Message: fmt.Sprintf("Added %s task %q (ID: %s)", task.Category, task.Title, task.ID),
	}, nil
}

func (s *Server) handleEditTask(ctx context.Context, req *mcp.CallToolRequest, input taskInput) (*mcp.CallToolResult, taskOutput, error) {
	if input.ID == "" {
		return nil, taskOutput{}, fmt.Errorf("id is required")
	}
	w, err := input.wire()
	if err != nil {
		return nil, taskOutput{}, err
	}

	task, ok := s.dash.PatchTask(input.ID, w)
	if !ok {
		return nil, taskOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}
	return nil, taskOutput{Task: viewOf(task), Message: fmt.Sprintf("Updated task %s", task.ID)}, nil
}

func (s *Server) handleDeleteTask(ctx context.Context, req *mcp.CallToolRequest, input taskIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !s.dash.DeleteTask(input.ID) {
		return nil, simpleOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted task: %s", input.ID)}, nil
}

func (s *Server) handleToggleTask(ctx context.Context, req *mcp.CallToolRequest, input taskIDInput) (*mcp.CallToolResult, toggleOutput, error) {
	if !s.dash.ToggleComplete(input.ID) {
		return nil, toggleOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}
	window := s.dash.UndoWindow()
	return nil, toggleOutput{
		ID:                input.ID,
		UndoWindowSeconds: window.Seconds(),
		Message:           fmt.Sprintf("Toggle pending for %s; call undo_toggle within %s to cancel", input.ID, window),
	}, nil
}

func (s *Server) handleUndoToggle(ctx context.Context, req *mcp.CallToolRequest, input taskIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !s.dash.Undo(input.ID) {
		return nil, simpleOutput{}, fmt.Errorf("no pending toggle for %s", input.ID)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Undid toggle for %s", input.ID)}, nil
}

func (s *Server) handleListMetrics(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return nil, map[string]any{
		"metrics":          s.dash.Metrics(),
		"selected_metrics": s.dash.SelectedMetrics(),
		"time_range":       s.dash.TimeRange(),
	}, nil
}

func (s *Server) handleGetMetricHistory(ctx context.Context, req *mcp.CallToolRequest, input metricIDInput) (*mcp.CallToolResult, any, error) {
	history, ok := s.dash.MetricHistory(input.ID)
	if !ok {
		return nil, nil, fmt.Errorf("metric not found: %s", input.ID)
	}
	if len(history) == 0 {
		return nil, map[string]any{"message": "No readings in the selected time range."}, nil
	}
	return nil, map[string]any{
		"id":         input.ID,
		"time_range": s.dash.TimeRange(),
		"history":    history,
	}, nil
}

func (s *Server) handleSelectMetrics(ctx context.Context, req *mcp.CallToolRequest, input selectMetricsInput) (*mcp.CallToolResult, preferencesOutput, error) {
	if err := s.dash.SetSelectedMetrics(input.IDs); err != nil {
		return nil, preferencesOutput{}, err
	}
	return nil, s.preferences(), nil
}

func (s *Server) handleSetTimeRange(ctx context.Context, req *mcp.CallToolRequest, input setTimeRangeInput) (*mcp.CallToolResult, preferencesOutput, error) {
	if err := s.dash.SetTimeRange(tasks.TimeRange(input.Range)); err != nil {
		return nil, preferencesOutput{}, err
	}
	return nil, s.preferences(), nil
}

func (s *Server) handleListAchievements(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return nil, map[string]any{"achievements": s.dash.Achievements()}, nil
}

func (s *Server) preferences() preferencesOutput {
	return preferencesOutput{
		SelectedMetrics: s.dash.SelectedMetrics(),
		TimeRange:       string(s.dash.TimeRange()),
	}
}
