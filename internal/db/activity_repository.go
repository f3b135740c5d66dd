package db

import (
	"time"

	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repo *ActivityRepository) Create(activity *models.Activity) error {
	return repo.database.Create(activity).Error
}

func (repo *ActivityRepository) FindByIDForUser(activityID uint, userID uint) (models.Activity, bool, error) {
	var activity models.Activity
	result := repo.database.
		Where("id = ? AND user_id = ?", activityID, userID).
		Limit(1).
		Find(&activity)
	if result.Error != nil {
		return models.Activity{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Activity{}, false, nil
	}
	return activity, true, nil
}

// ListByUser returns the user's activities newest first.
func (repo *ActivityRepository) ListByUser(userID uint) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (repo *ActivityRepository) ListStartedBy(day time.Time) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("start_date <= ?", day).
		Order("id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (repo *ActivityRepository) ListLogsByUserRange(userID uint, from time.Time, to time.Time) ([]models.ActivityLog, error) {
	logs := make([]models.ActivityLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *ActivityRepository) CompletedLogExists(activityID uint, day time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.ActivityLog{}).
		Where("activity_id = ? AND date = ? AND completed = ?", activityID, day, true).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
