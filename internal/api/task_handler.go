// ABOUTME: Task endpoints: list by view, add, partial edit, delete, toggle and undo.
// ABOUTME: Drafts without a title are rejected before reaching the dashboard.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/tasks"
)

// ListTasks returns one derived view, sorted. The view defaults to "all".
func (a *API) ListTasks(c *gin.Context) {
	view, err := tasks.ParseView(c.Query("view"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidView)
		return
	}

	list := a.dash.Views().Select(view)
	response := make([]models.TaskWire, 0, len(list))
	for _, t := range list {
		response = append(response, t.Wire())
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "tasks": response})
}

// CreateTask adds a task. A title is required; missing variant fields get placeholders.
func (a *API) CreateTask(c *gin.Context) {
	var req models.TaskWire
	if !bindJSON(c, &req, msgInvalidBody) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(c, http.StatusBadRequest, msgTitleRequired)
		return
	}

	task := a.dash.AddTask(req.Draft())
	c.JSON(http.StatusCreated, gin.H{"task": task.Wire()})
}

// UpdateTask merges the non-empty request fields onto an existing task.
func (a *API) UpdateTask(c *gin.Context) {
	var req models.TaskWire
	if !bindJSON(c, &req, msgInvalidBody) {
		return
	}

	task, ok := a.dash.PatchTask(c.Param("id"), req)
	if !ok {
		respondError(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task.Wire()})
}

// DeleteTask removes a task.
func (a *API) DeleteTask(c *gin.Context) {
	if !a.dash.DeleteTask(c.Param("id")) {
		respondError(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "وظیفه حذف شد."})
}

// ToggleTask schedules a completion flip. It commits after the undo window.
func (a *API) ToggleTask(c *gin.Context) {
	id := c.Param("id")
	if !a.dash.ToggleComplete(id) {
		respondError(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"pending":           id,
		"undoWindowSeconds": a.dash.UndoWindow().Seconds(),
	})
}

// UndoToggle cancels the pending toggle for the task.
func (a *API) UndoToggle(c *gin.Context) {
	id := c.Param("id")
	if !a.dash.Undo(id) {
		respondError(c, http.StatusNotFound, msgNothingToUndo)
		return
	}
	task, _ := a.dash.Task(id)
	c.JSON(http.StatusOK, gin.H{"message": "تغییر بازگردانده شد.", "task": task.Wire()})
}
