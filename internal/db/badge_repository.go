package db

import (
	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type BadgeRepository struct {
	database *gorm.DB
}

func NewBadgeRepository(database *gorm.DB) *BadgeRepository {
	return &BadgeRepository{database: database}
}

func (repo *BadgeRepository) ListCatalog() ([]models.Badge, error) {
	badges := make([]models.Badge, 0)
	if err := repo.database.Order("id ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (repo *BadgeRepository) ListUnlockedBadgeIDs(userID uint) (map[uint]bool, error) {
	entries := make([]models.UserBadge, 0)
	if err := repo.database.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	unlocked := make(map[uint]bool, len(entries))
	for _, entry := range entries {
		unlocked[entry.BadgeID] = true
	}
	return unlocked, nil
}
