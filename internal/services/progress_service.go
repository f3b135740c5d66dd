package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound       = errors.New("activity not found")
	ErrDailyChallengeNotFound = errors.New("daily challenge not found")
	ErrGoalNotMet             = errors.New("goal not met")
	ErrAlreadyClaimed         = errors.New("reward already claimed")
	ErrUnknownDailyGoal       = errors.New("unknown daily goal")
)

const (
	DailyGoalActivities = "activities"
	DailyGoalSport      = "sport"
	DailyGoalHealth     = "health"
)

// ProgressService owns the completion-toggle bookkeeping chain: activity
// log upsert, daily challenge counters, streaks, badge unlocks, catalog
// challenge progress and star credits. Every toggle runs inside a single
// transaction so a failing step leaves prior state untouched.
type ProgressService struct {
	database *gorm.DB
	location *time.Location
}

func NewProgressService(database *gorm.DB, location *time.Location) *ProgressService {
	if location == nil {
		location = time.UTC
	}
	return &ProgressService{database: database, location: location}
}

type ToggleResult struct {
	Log                 models.ActivityLog
	Daily               models.DailyChallenge
	Streak              int
	UnlockedBadges      []models.Badge
	CompletedChallenges []models.Challenge
}

func (service *ProgressService) ToggleCompletion(userID uint, activityID uint, day time.Time, done bool) (ToggleResult, error) {
	dayStart := DateAtLocation(day, service.location)
	result := ToggleResult{}

	err := service.database.Transaction(func(tx *gorm.DB) error {
		activity, found, err := findActivityForUser(tx, activityID, userID)
		if err != nil {
			return err
		}
		if !found {
			return ErrActivityNotFound
		}

		entry, found, err := findActivityLog(tx, activityID, dayStart)
		if err != nil {
			return err
		}
		if found && entry.Completed == done {
			// Already in the requested state; report without mutating.
			result.Log = entry
			return service.loadSnapshot(tx, userID, activity, dayStart, &result)
		}

		wasCompleted := found && entry.Completed
		if found {
			entry.Completed = done
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
		} else {
			entry = models.ActivityLog{
				ActivityID: activityID,
				UserID:     userID,
				Date:       dayStart,
				Completed:  done,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		result.Log = entry

		daily, err := upsertDailyChallenge(tx, userID, dayStart)
		if err != nil {
			return err
		}
		// Counters move only when this activity's completed state actually
		// flips. Toggling off a day that was never completed records the
		// log but must not erase progress other activities earned.
		if done != wasCompleted {
			applyDailyDelta(&daily, activity.Category, done)
			if err := tx.Save(&daily).Error; err != nil {
				return err
			}
		}
		result.Daily = daily

		if err := service.evaluateUnlocks(tx, userID, activity, dayStart, done, &result); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return result, nil
}

// ClaimDailyReward converts met progress into a one-time star credit. The
// claimed flag, not the counter, gates the reward; toggling a completion
// off later never revokes it.
func (service *ProgressService) ClaimDailyReward(userID uint, day time.Time, goal string) (models.DailyChallenge, error) {
	dayStart := DateAtLocation(day, service.location)
	var claimed models.DailyChallenge

	err := service.database.Transaction(func(tx *gorm.DB) error {
		var daily models.DailyChallenge
		lookup := tx.Where("user_id = ? AND date = ?", userID, dayStart).Limit(1).Find(&daily)
		if lookup.Error != nil {
			return lookup.Error
		}
		if lookup.RowsAffected == 0 {
			return ErrDailyChallengeNotFound
		}

		var reward int
		switch goal {
		case DailyGoalActivities:
			if daily.ActivitiesClaimed {
				return ErrAlreadyClaimed
			}
			if daily.ActivitiesCompleted < daily.ActivitiesTarget {
				return ErrGoalNotMet
			}
			daily.ActivitiesClaimed = true
			reward = daily.ActivitiesReward
		case DailyGoalSport:
			if daily.SportClaimed {
				return ErrAlreadyClaimed
			}
			if daily.SportCompleted < daily.SportTarget {
				return ErrGoalNotMet
			}
			daily.SportClaimed = true
			reward = daily.SportReward
		case DailyGoalHealth:
			if daily.HealthClaimed {
				return ErrAlreadyClaimed
			}
			if daily.HealthCompleted < daily.HealthTarget {
				return ErrGoalNotMet
			}
			daily.HealthClaimed = true
			reward = daily.HealthReward
		default:
			return ErrUnknownDailyGoal
		}

		if err := tx.Save(&daily).Error; err != nil {
			return err
		}
		if err := creditStars(tx, userID, reward); err != nil {
			return err
		}
		claimed = daily
		return nil
	})
	if err != nil {
		return models.DailyChallenge{}, err
	}
	return claimed, nil
}

func (service *ProgressService) DailyChallengeFor(userID uint, day time.Time) (models.DailyChallenge, error) {
	dayStart := DateAtLocation(day, service.location)
	var daily models.DailyChallenge
	lookup := service.database.Where("user_id = ? AND date = ?", userID, dayStart).Limit(1).Find(&daily)
	if lookup.Error != nil {
		return models.DailyChallenge{}, lookup.Error
	}
	if lookup.RowsAffected == 0 {
		return newDailyChallenge(userID, dayStart), nil
	}
	return daily, nil
}

func (service *ProgressService) StreakFor(userID uint, activityID uint, day time.Time) (int, error) {
	logs, err := completedLogsForActivity(service.database, activityID)
	if err != nil {
		return 0, err
	}
	return StreakLength(logs, DateAtLocation(day, service.location), service.location), nil
}

func (service *ProgressService) loadSnapshot(tx *gorm.DB, userID uint, activity models.Activity, dayStart time.Time, result *ToggleResult) error {
	var daily models.DailyChallenge
	lookup := tx.Where("user_id = ? AND date = ?", userID, dayStart).Limit(1).Find(&daily)
	if lookup.Error != nil {
		return lookup.Error
	}
	if lookup.RowsAffected == 0 {
		daily = newDailyChallenge(userID, dayStart)
	}
	result.Daily = daily

	logs, err := completedLogsForActivity(tx, activity.ID)
	if err != nil {
		return err
	}
	result.Streak = StreakLength(logs, dayStart, service.location)
	return nil
}

// evaluateUnlocks recomputes aggregates and grants badges and catalog
// challenge rewards. Grants are gated so re-evaluation is a no-op; nothing
// already granted is revoked on toggle-off.
func (service *ProgressService) evaluateUnlocks(tx *gorm.DB, userID uint, activity models.Activity, dayStart time.Time, done bool, result *ToggleResult) error {
	activityLogs, err := completedLogsForActivity(tx, activity.ID)
	if err != nil {
		return err
	}
	streak := StreakLength(activityLogs, dayStart, service.location)
	result.Streak = streak

	userLogs := make([]models.ActivityLog, 0)
	if err := tx.Where("user_id = ? AND completed = ?", userID, true).Find(&userLogs).Error; err != nil {
		return err
	}
	totalCompleted := len(userLogs)
	daysActive := CountActiveDays(userLogs, service.location)

	var activitiesCreated int64
	if err := tx.Model(&models.Activity{}).Where("user_id = ?", userID).Count(&activitiesCreated).Error; err != nil {
		return err
	}

	if done {
		unlocked, err := grantBadges(tx, userID, badgeMetrics{
			ActivitiesCreated: int(activitiesCreated),
			Streak:            streak,
			TotalCompleted:    totalCompleted,
			DaysActive:        daysActive,
		}, dayStart)
		if err != nil {
			return err
		}
		result.UnlockedBadges = unlocked
	}

	completedChallenges, err := advanceUserChallenges(tx, userID, streak, totalCompleted, dayStart)
	if err != nil {
		return err
	}
	result.CompletedChallenges = completedChallenges
	return nil
}

type badgeMetrics struct {
	ActivitiesCreated int
	Streak            int
	TotalCompleted    int
	DaysActive        int
}

func (metrics badgeMetrics) value(conditionType string) int {
	switch conditionType {
	case models.BadgeConditionActivitiesCreated:
		return metrics.ActivitiesCreated
	case models.BadgeConditionStreak:
		return metrics.Streak
	case models.BadgeConditionTotalCompleted:
		return metrics.TotalCompleted
	case models.BadgeConditionDaysActive:
		return metrics.DaysActive
	default:
		return 0
	}
}

func grantBadges(tx *gorm.DB, userID uint, metrics badgeMetrics, now time.Time) ([]models.Badge, error) {
	catalog := make([]models.Badge, 0)
	if err := tx.Order("id ASC").Find(&catalog).Error; err != nil {
		return nil, err
	}

	owned := make([]models.UserBadge, 0)
	if err := tx.Where("user_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, err
	}
	alreadyUnlocked := make(map[uint]bool, len(owned))
	for _, entry := range owned {
		alreadyUnlocked[entry.BadgeID] = true
	}

	unlocked := make([]models.Badge, 0)
	for _, badge := range catalog {
		if alreadyUnlocked[badge.ID] {
			continue
		}
		if metrics.value(badge.ConditionType) < badge.Threshold {
			continue
		}

		grant := models.UserBadge{UserID: userID, BadgeID: badge.ID, UnlockedAt: now}
		if err := tx.Create(&grant).Error; err != nil {
			return nil, err
		}
		notification := models.Notification{
			UserID:    userID,
			Kind:      models.NotificationBadgeUnlocked,
			Title:     "Badge unlocked",
			Body:      fmt.Sprintf("%s %s: %s", badge.Icon, badge.Name, badge.Description),
			CreatedAt: now,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return nil, err
		}
		unlocked = append(unlocked, badge)
	}
	return unlocked, nil
}

func advanceUserChallenges(tx *gorm.DB, userID uint, streak int, totalCompleted int, now time.Time) ([]models.Challenge, error) {
	participations := make([]models.UserChallenge, 0)
	if err := tx.Where("user_id = ?", userID).Find(&participations).Error; err != nil {
		return nil, err
	}

	completed := make([]models.Challenge, 0)
	for index := range participations {
		participation := &participations[index]
		if participation.Status == models.ChallengeCompleted {
			continue
		}

		var challenge models.Challenge
		lookup := tx.Where("id = ?", participation.ChallengeID).Limit(1).Find(&challenge)
		if lookup.Error != nil {
			return nil, lookup.Error
		}
		if lookup.RowsAffected == 0 {
			continue
		}

		progress := totalCompleted
		if challenge.GoalType == models.GoalConsecutiveDays {
			progress = streak
		}
		participation.Progress = progress

		if progress >= challenge.GoalValue {
			participation.Status = models.ChallengeCompleted
			completedAt := now
			participation.CompletedAt = &completedAt
			if !participation.RewardGranted {
				participation.RewardGranted = true
				if err := creditStars(tx, userID, challenge.StarReward); err != nil {
					return nil, err
				}
				notification := models.Notification{
					UserID:    userID,
					Kind:      models.NotificationChallengeCompleted,
					Title:     "Challenge completed",
					Body:      fmt.Sprintf("%s: %d stars earned", challenge.Name, challenge.StarReward),
					CreatedAt: now,
				}
				if err := tx.Create(&notification).Error; err != nil {
					return nil, err
				}
			}
			completed = append(completed, challenge)
		}

		if err := tx.Save(participation).Error; err != nil {
			return nil, err
		}
	}
	return completed, nil
}

func creditStars(tx *gorm.DB, userID uint, amount int) error {
	if amount <= 0 {
		return nil
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("stars", gorm.Expr("stars + ?", amount)).Error
}

func findActivityForUser(tx *gorm.DB, activityID uint, userID uint) (models.Activity, bool, error) {
	var activity models.Activity
	result := tx.Where("id = ? AND user_id = ?", activityID, userID).Limit(1).Find(&activity)
	if result.Error != nil {
		return models.Activity{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Activity{}, false, nil
	}
	return activity, true, nil
}

func findActivityLog(tx *gorm.DB, activityID uint, dayStart time.Time) (models.ActivityLog, bool, error) {
	var entry models.ActivityLog
	result := tx.Where("activity_id = ? AND date = ?", activityID, dayStart).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.ActivityLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ActivityLog{}, false, nil
	}
	return entry, true, nil
}

func completedLogsForActivity(tx *gorm.DB, activityID uint) ([]models.ActivityLog, error) {
	logs := make([]models.ActivityLog, 0)
	if err := tx.Where("activity_id = ? AND completed = ?", activityID, true).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func newDailyChallenge(userID uint, dayStart time.Time) models.DailyChallenge {
	return models.DailyChallenge{
		UserID:           userID,
		Date:             dayStart,
		ActivitiesTarget: models.DailyActivitiesTarget,
		ActivitiesReward: models.DailyActivitiesReward,
		SportTarget:      models.DailySportTarget,
		SportReward:      models.DailySportReward,
		HealthTarget:     models.DailyHealthTarget,
		HealthReward:     models.DailyHealthReward,
	}
}

func upsertDailyChallenge(tx *gorm.DB, userID uint, dayStart time.Time) (models.DailyChallenge, error) {
	var daily models.DailyChallenge
	lookup := tx.Where("user_id = ? AND date = ?", userID, dayStart).Limit(1).Find(&daily)
	if lookup.Error != nil {
		return models.DailyChallenge{}, lookup.Error
	}
	if lookup.RowsAffected > 0 {
		return daily, nil
	}

	daily = newDailyChallenge(userID, dayStart)
	if err := tx.Create(&daily).Error; err != nil {
		return models.DailyChallenge{}, err
	}
	return daily, nil
}

// applyDailyDelta moves the counters by one in either direction. Counters
// clamp at zero on toggle-off; claimed flags are left alone.
func applyDailyDelta(daily *models.DailyChallenge, category string, done bool) {
	delta := 1
	if !done {
		delta = -1
	}

	daily.ActivitiesCompleted = clampNonNegative(daily.ActivitiesCompleted + delta)
	switch category {
	case models.CategorySport:
		daily.SportCompleted = clampNonNegative(daily.SportCompleted + delta)
	case models.CategoryHealth:
		daily.HealthCompleted = clampNonNegative(daily.HealthCompleted + delta)
	}
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
