package models

import "time"

const (
	NotificationLateActivity       = "late_activity"
	NotificationEventStart         = "event_start"
	NotificationEventEnding        = "event_ending"
	NotificationFriendRequest      = "friend_request"
	NotificationBadgeUnlocked      = "badge_unlocked"
	NotificationChallengeCompleted = "challenge_completed"
)

// Notification rows are append-only except for the Read flag. DedupeKey
// makes job-emitted notifications idempotent: at most one row per
// (user, key) when the key is non-empty.
type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uidx_user_dedupe"`
	Kind      string    `gorm:"not null"`
	Title     string    `gorm:"not null"`
	Body      string    `gorm:"not null"`
	DedupeKey *string   `gorm:"uniqueIndex:uidx_user_dedupe"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}
