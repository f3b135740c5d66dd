package db

import (
	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) ListByUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications := make([]models.Notification, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("read ASC, created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *NotificationRepository) Create(notification *models.Notification) error {
	return repo.database.Create(notification).Error
}

// EnsureWithDedupeKey creates the notification unless a row with the same
// (user, dedupe key) already exists. Returns whether a row was created.
func (repo *NotificationRepository) EnsureWithDedupeKey(notification *models.Notification) (bool, error) {
	if notification.DedupeKey == nil || *notification.DedupeKey == "" {
		if err := repo.database.Create(notification).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	var matched int64
	if err := repo.database.Model(&models.Notification{}).
		Where("user_id = ? AND dedupe_key = ?", notification.UserID, *notification.DedupeKey).
		Count(&matched).Error; err != nil {
		return false, err
	}
	if matched > 0 {
		return false, nil
	}
	if err := repo.database.Create(notification).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (repo *NotificationRepository) MarkRead(userID uint, notificationID uint) (bool, error) {
	result := repo.database.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var unread int64
	if err := repo.database.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return 0, err
	}
	return unread, nil
}
