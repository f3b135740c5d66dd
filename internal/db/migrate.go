package db

import (
	"fmt"

	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. It is invoked by the operator CLI
// and at startup, never over HTTP.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.ActivityLog{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.DailyChallenge{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Notification{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.FriendChallenge{},
		&models.Event{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Seed populates the badge and challenge catalogs. Safe to run repeatedly:
// rows are keyed on name and skipped when present.
func Seed(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, badge := range models.DefaultBadges() {
			var matched int64
			if err := tx.Model(&models.Badge{}).Where("name = ?", badge.Name).Count(&matched).Error; err != nil {
				return fmt.Errorf("check badge %q: %w", badge.Name, err)
			}
			if matched > 0 {
				continue
			}
			if err := tx.Create(&badge).Error; err != nil {
				return fmt.Errorf("seed badge %q: %w", badge.Name, err)
			}
		}

		for _, challenge := range models.DefaultChallenges() {
			var matched int64
			if err := tx.Model(&models.Challenge{}).Where("name = ?", challenge.Name).Count(&matched).Error; err != nil {
				return fmt.Errorf("check challenge %q: %w", challenge.Name, err)
			}
			if matched > 0 {
				continue
			}
			if err := tx.Create(&challenge).Error; err != nil {
				return fmt.Errorf("seed challenge %q: %w", challenge.Name, err)
			}
		}

		return nil
	})
}
