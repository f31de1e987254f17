// ABOUTME: Metric, preference and achievement endpoints.
// ABOUTME: History responses are filtered by the selected time range.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/healthdash/internal/dashboard"
	"github.com/harperreed/healthdash/internal/tasks"
)

// ListMetrics returns every metric with the current selection.
func (a *API) ListMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics":         a.dash.Metrics(),
		"selectedMetrics": a.dash.SelectedMetrics(),
		"timeRange":       a.dash.TimeRange(),
	})
}

// GetMetric returns one metric and its history within the selected time range.
func (a *API) GetMetric(c *gin.Context) {
	id := c.Param("id")
	m, ok := a.dash.Metric(id)
	if !ok {
		respondError(c, http.StatusNotFound, msgMetricNotFound)
		return
	}
	history, _ := a.dash.MetricHistory(id)
	c.JSON(http.StatusOK, gin.H{"metric": m, "history": history, "timeRange": a.dash.TimeRange()})
}

// ListAchievements returns the read-only achievement list.
func (a *API) ListAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": a.dash.Achievements()})
}

type preferencesRequest struct {
	SelectedMetrics *[]string        `json:"selectedMetrics"`
	TimeRange       *tasks.TimeRange `json:"timeRange"`
}

// GetPreferences returns the persisted dashboard preferences.
func (a *API) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selectedMetrics": a.dash.SelectedMetrics(),
		"timeRange":       a.dash.TimeRange(),
	})
}

// UpdatePreferences changes the fields present in the request body.
func (a *API) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if !bindJSON(c, &req, msgInvalidBody) {
		return
	}

	if req.TimeRange != nil {
		if err := a.dash.SetTimeRange(*req.TimeRange); err != nil {
			respondError(c, http.StatusBadRequest, msgInvalidTimeRange)
			return
		}
	}
	if req.SelectedMetrics != nil {
		if err := a.dash.SetSelectedMetrics(*req.SelectedMetrics); err != nil {
			if errors.Is(err, dashboard.ErrUnknownMetric) {
				respondError(c, http.StatusBadRequest, msgMetricNotFound)
				return
			}
			respondError(c, http.StatusInternalServerError, msgInternal)
			return
		}
	}

	a.GetPreferences(c)
}
