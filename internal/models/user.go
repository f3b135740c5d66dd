package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

const DefaultTheme = ThemeSystem

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:user"`
	Theme        string    `gorm:"not null;default:system"`
	Stars        int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func ValidTheme(theme string) bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
