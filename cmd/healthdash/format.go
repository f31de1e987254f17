// ABOUTME: Shared terminal formatting helpers for CLI output.
// ABOUTME: Rune-aware truncation and padding plus status/priority coloring.
package main

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/harperreed/healthdash/internal/models"
)

var faint = color.New(color.Faint)

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusGood:
		return color.New(color.FgGreen)
	case models.StatusWarning:
		return color.New(color.FgYellow)
	case models.StatusDanger:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

func priorityColor(p models.Priority) *color.Color {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgRed)
	case models.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return faint
	}
}

func trendArrow(t models.Trend) string {
	switch t {
	case models.TrendIncreasing:
		return "↑"
	case models.TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}

func formatDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format("2006-01-02")
}
