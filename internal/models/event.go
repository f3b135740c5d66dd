package models

import "time"

// Event is an admin-defined time-bounded occurrence announced to all
// users by the notification job. The notified flags record that the
// start/ending announcements went out.
type Event struct {
	ID             uint      `gorm:"primaryKey"`
	Title          string    `gorm:"not null"`
	Body           string    `gorm:"not null"`
	StartsAt       time.Time `gorm:"not null;index"`
	EndsAt         time.Time `gorm:"not null;index"`
	StartNotified  bool      `gorm:"not null;default:false"`
	EndingNotified bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
}
