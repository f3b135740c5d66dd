package models

import "time"

const (
	CategoryGeneral = "general"
	CategorySport   = "sport"
	CategoryHealth  = "health"
)

type Activity struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	Icon      string    `gorm:"not null"`
	Color     string    `gorm:"not null"`
	Category  string    `gorm:"not null;default:general"`
	StartDate time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// ActivityLog stores at most one completion record per activity per
// calendar day; Date is the day start in the service location.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey"`
	ActivityID uint      `gorm:"not null;uniqueIndex:uidx_activity_date"`
	UserID     uint      `gorm:"not null;index"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_activity_date"`
	Completed  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryGeneral, CategorySport, CategoryHealth:
		return true
	default:
		return false
	}
}
