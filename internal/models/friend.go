package models

import "time"

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestDeclined = "declined"
)

// A declined request does not block a later retry, so the pair index is
// not unique; the repository filters on status instead.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey"`
	FromUserID  uint      `gorm:"not null;index:idx_friend_request_pair"`
	ToUserID    uint      `gorm:"not null;index:idx_friend_request_pair"`
	Status      string    `gorm:"not null;default:pending"`
	CreatedAt   time.Time `gorm:"not null"`
	RespondedAt *time.Time
}

// Friendship is stored in both directions once a request is accepted, so
// listing a user's friends is a single indexed query.
type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_friendship"`
	FriendID  uint      `gorm:"not null;uniqueIndex:uidx_friendship"`
	CreatedAt time.Time `gorm:"not null"`
}

const (
	FriendChallengeActive    = "active"
	FriendChallengeCompleted = "completed"
)

// FriendChallenge carries one shared goal between two accepted friends,
// with independent progress counters.
type FriendChallenge struct {
	ID              uint      `gorm:"primaryKey"`
	CreatorID       uint      `gorm:"not null;index"`
	FriendID        uint      `gorm:"not null;index"`
	Name            string    `gorm:"not null"`
	GoalValue       int       `gorm:"not null"`
	CreatorProgress int       `gorm:"not null;default:0"`
	FriendProgress  int       `gorm:"not null;default:0"`
	Status          string    `gorm:"not null;default:active"`
	CreatedAt       time.Time `gorm:"not null"`
}
