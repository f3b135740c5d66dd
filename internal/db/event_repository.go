package db

import (
	"time"

	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

func (repo *EventRepository) Create(event *models.Event) error {
	return repo.database.Create(event).Error
}

func (repo *EventRepository) List() ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.Order("starts_at DESC, id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) ListStartedUnnotified(now time.Time) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.
		Where("starts_at <= ? AND start_notified = ?", now, false).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) ListEndingUnnotified(now time.Time, lookahead time.Duration) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.
		Where("ends_at >= ? AND ends_at <= ? AND ending_notified = ?", now, now.Add(lookahead), false).
		Order("ends_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) MarkStartNotified(eventID uint) error {
	return repo.database.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("start_notified", true).Error
}

func (repo *EventRepository) MarkEndingNotified(eventID uint) error {
	return repo.database.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("ending_notified", true).Error
}
