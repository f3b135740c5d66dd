package models

import "time"

const (
	BadgeConditionActivitiesCreated = "activities_created"
	BadgeConditionStreak            = "streak"
	BadgeConditionTotalCompleted    = "total_completed"
	BadgeConditionDaysActive        = "days_active"
)

type Badge struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;not null"`
	Description   string `gorm:"not null"`
	Icon          string `gorm:"not null"`
	ConditionType string `gorm:"not null"`
	Threshold     int    `gorm:"not null"`
}

type UserBadge struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_user_badge"`
	BadgeID    uint      `gorm:"not null;uniqueIndex:uidx_user_badge"`
	UnlockedAt time.Time `gorm:"not null"`
}

// DefaultBadges is the seeded catalog; Seed skips names that already exist.
func DefaultBadges() []Badge {
	return []Badge{
		{Name: "First Steps", Description: "Create your first activity", Icon: "🌱", ConditionType: BadgeConditionActivitiesCreated, Threshold: 1},
		{Name: "Collector", Description: "Create five activities", Icon: "🗂️", ConditionType: BadgeConditionActivitiesCreated, Threshold: 5},
		{Name: "Warming Up", Description: "Keep a 3-day streak", Icon: "🔥", ConditionType: BadgeConditionStreak, Threshold: 3},
		{Name: "On Fire", Description: "Keep a 7-day streak", Icon: "🚀", ConditionType: BadgeConditionStreak, Threshold: 7},
		{Name: "Unstoppable", Description: "Keep a 30-day streak", Icon: "🏆", ConditionType: BadgeConditionStreak, Threshold: 30},
		{Name: "Getting Things Done", Description: "Complete 10 activities", Icon: "✅", ConditionType: BadgeConditionTotalCompleted, Threshold: 10},
		{Name: "Centurion", Description: "Complete 100 activities", Icon: "💯", ConditionType: BadgeConditionTotalCompleted, Threshold: 100},
		{Name: "Regular", Description: "Be active on 14 different days", Icon: "📅", ConditionType: BadgeConditionDaysActive, Threshold: 14},
	}
}
