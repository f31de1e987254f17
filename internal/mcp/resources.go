// ABOUTME: MCP resource implementations for the health dashboard.
// ABOUTME: Provides dashboard://tasks/today, dashboard://metrics, and dashboard://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/healthdash/internal/models"
)

const (
	uriTodayTasks = "dashboard://tasks/today"
	uriMetrics    = "dashboard://metrics"
	uriSummary    = "dashboard://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriTodayTasks,
		Name:        "Today's Tasks",
		Description: "Tasks due today, sorted by completion, priority and due date",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriMetrics,
		Name:        "Selected Metrics",
		Description: "The dashboard's selected metrics with history in the current time range",
		MIMEType:    "application/json",
	}, s.handleMetricsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriSummary,
		Name:        "Dashboard Summary",
		Description: "Metric statuses, task counts per view, and achievements",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.dash.Views().Today

	pending := 0
	list := make([]taskView, 0, len(today))
	for _, t := range today {
		if !t.IsCompleted {
			pending++
		}
		list = append(list, viewOf(t))
	}

	return jsonResource(uriTodayTasks, map[string]any{
		"date":  s.dash.Now().Format("2006-01-02"),
		"tasks": list,
		"counts": map[string]int{
			"total":   len(list),
			"pending": pending,
		},
	})
}

func (s *Server) handleMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var selected []any
	for _, id := range s.dash.SelectedMetrics() {
		m, ok := s.dash.Metric(id)
		if !ok {
			continue
		}
		history, _ := s.dash.MetricHistory(id)
		m.History = history
		selected = append(selected, m)
	}

	return jsonResource(uriMetrics, map[string]any{
		"time_range": s.dash.TimeRange(),
		"metrics":    selected,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	metrics := make(map[string]any)
	attention := 0
	for _, m := range s.dash.Metrics() {
		metrics[m.ID] = map[string]any{
			"name":    m.Name,
			"current": models.FormatValue(m.CurrentValue),
			"target":  models.FormatTarget(m.TargetValue),
			"unit":    m.Unit,
			"status":  m.Status,
			"trend":   m.Trend,
		}
		if m.Status == models.StatusWarning || m.Status == models.StatusDanger {
			attention++
		}
	}

	views := s.dash.Views()
	completed := 0
	for _, t := range views.All {
		if t.IsCompleted {
			completed++
		}
	}

	achieved := 0
	achievements := s.dash.Achievements()
	for _, a := range achievements {
		if a.IsAchieved {
			achieved++
		}
	}

	pending, hasPending := s.dash.Pending()
	result := map[string]any{
		"generated_at": s.dash.Now().Format(time.RFC3339),
		"metrics":      metrics,
		"tasks": map[string]int{
			"all":             len(views.All),
			"completed":       completed,
			"today":           len(views.Today),
			"upcoming":        len(views.Upcoming),
			"measurement":     len(views.Measurement),
			"recommendations": len(views.Recommendations),
		},
		"summary": map[string]int{
			"metrics_needing_attention": attention,
			"achievements_earned":       achieved,
			"achievements_total":        len(achievements),
		},
	}
	if hasPending {
		result["pending_toggle"] = pending
	}
	return jsonResource(uriSummary, result)
}
