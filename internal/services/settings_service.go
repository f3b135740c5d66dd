package services

import (
	"errors"
	"strings"

	"github.com/rowanvale/strive/internal/models"
)

var (
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidDisplayName = errors.New("display name is required")
)

type SettingsUserRepository interface {
	UpdateByID(userID uint, updates map[string]any) error
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

// UpdateTheme persists the preference per user; the theme is session
// configuration, never process-wide state.
func (service *SettingsService) UpdateTheme(userID uint, theme string) error {
	normalized := strings.ToLower(strings.TrimSpace(theme))
	if !models.ValidTheme(normalized) {
		return ErrInvalidTheme
	}
	return service.users.UpdateByID(userID, map[string]any{"theme": normalized})
}

func (service *SettingsService) UpdateDisplayName(userID uint, displayName string) error {
	trimmed := strings.TrimSpace(displayName)
	if trimmed == "" {
		return ErrInvalidDisplayName
	}
	if len([]rune(trimmed)) > 60 {
		trimmed = string([]rune(trimmed)[:60])
	}
	return service.users.UpdateByID(userID, map[string]any{"display_name": trimmed})
}
