// ABOUTME: Achievement model for dashboard milestones.
// ABOUTME: Read-only sample data; no mutation contract.
package models

import "time"

// AchievementCategory groups achievements on the dashboard.
type AchievementCategory string

const (
	AchievementStreak      AchievementCategory = "streak"
	AchievementGoal        AchievementCategory = "goal"
	AchievementConsistency AchievementCategory = "consistency"
	AchievementMilestone   AchievementCategory = "milestone"
	AchievementOther       AchievementCategory = "other"
)

// Achievement represents a milestone the user has reached or is working toward.
type Achievement struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	Description  string              `json:"description" yaml:"description"`
	Icon         string              `json:"icon" yaml:"icon"`
	IsAchieved   bool                `json:"isAchieved" yaml:"is_achieved"`
	AchievedDate *time.Time          `json:"achievedDate,omitempty" yaml:"achieved_date,omitempty"`
	Category     AchievementCategory `json:"category" yaml:"category"`
}

// SampleAchievements returns the demo achievement list.
func SampleAchievements(now time.Time) []Achievement {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)
	return []Achievement{
		{
			ID:           "streak-7",
			Title:        "هفت روز پیاپی",
			Description:  "هفت روز پشت سر هم قند خون خود را ثبت کردید.",
			Icon:         "flame",
			IsAchieved:   true,
			AchievedDate: &weekAgo,
			Category:     AchievementStreak,
		},
		{
			ID:           "first-goal",
			Title:        "اولین هدف",
			Description:  "اولین هدف سلامتی خود را کامل کردید.",
			Icon:         "target",
			IsAchieved:   true,
			AchievedDate: &monthAgo,
			Category:     AchievementGoal,
		},
		{
			ID:          "water-30",
			Title:       "آبرسانی منظم",
			Description: "سی روز مصرف آب کافی.",
			Icon:        "droplets",
			Category:    AchievementConsistency,
		},
		{
			ID:          "weight-5kg",
			Title:       "کاهش ۵ کیلوگرم",
			Description: "پنج کیلوگرم به وزن هدف نزدیک‌تر شوید.",
			Icon:        "scale",
			Category:    AchievementMilestone,
		},
	}
}
