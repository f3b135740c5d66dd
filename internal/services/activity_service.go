package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

var (
	ErrInvalidActivityName     = errors.New("activity name is required")
	ErrInvalidActivityCategory = errors.New("invalid activity category")
)

type ActivityRepository interface {
	Create(activity *models.Activity) error
	ListByUser(userID uint) ([]models.Activity, error)
	FindByIDForUser(activityID uint, userID uint) (models.Activity, bool, error)
	ListLogsByUserRange(userID uint, from time.Time, to time.Time) ([]models.ActivityLog, error)
}

type ActivityService struct {
	activities ActivityRepository
	location   *time.Location
}

func NewActivityService(activities ActivityRepository, location *time.Location) *ActivityService {
	if location == nil {
		location = time.UTC
	}
	return &ActivityService{activities: activities, location: location}
}

type NewActivityInput struct {
	Name      string
	Icon      string
	Color     string
	Category  string
	StartDate time.Time
}

func (service *ActivityService) Create(userID uint, input NewActivityInput, now time.Time) (models.Activity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Activity{}, ErrInvalidActivityName
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.ValidCategory(category) {
		return models.Activity{}, ErrInvalidActivityCategory
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	activity := models.Activity{
		UserID:    userID,
		Name:      name,
		Icon:      strings.TrimSpace(input.Icon),
		Color:     strings.TrimSpace(input.Color),
		Category:  category,
		StartDate: DateAtLocation(startDate, service.location),
		CreatedAt: now,
	}
	if err := service.activities.Create(&activity); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (service *ActivityService) ListForUser(userID uint) ([]models.Activity, error) {
	return service.activities.ListByUser(userID)
}

// CompletionCalendar maps day strings (2006-01-02) to the activity IDs
// completed on that day within the range.
func (service *ActivityService) CompletionCalendar(userID uint, from time.Time, to time.Time) (map[string][]uint, error) {
	fromStart := DateAtLocation(from, service.location)
	toStart := DateAtLocation(to, service.location)

	logs, err := service.activities.ListLogsByUserRange(userID, fromStart, toStart)
	if err != nil {
		return nil, err
	}

	calendar := make(map[string][]uint)
	for _, entry := range logs {
		if !entry.Completed {
			continue
		}
		day := DateAtLocation(entry.Date, service.location).Format("2006-01-02")
		calendar[day] = append(calendar[day], entry.ActivityID)
	}
	return calendar, nil
}
