package models

import "time"

const (
	GoalConsecutiveDays  = "consecutive_days"
	GoalTotalCompletions = "total_completions"
)

const (
	ChallengeInProgress = "in_progress"
	ChallengeCompleted  = "completed"
)

// Challenge is a fixed admin-defined catalog entry shared across users.
type Challenge struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"not null"`
	GoalType    string    `gorm:"not null"`
	GoalValue   int       `gorm:"not null"`
	StarReward  int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type UserChallenge struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;uniqueIndex:uidx_user_challenge"`
	ChallengeID   uint   `gorm:"not null;uniqueIndex:uidx_user_challenge"`
	Progress      int    `gorm:"not null;default:0"`
	Status        string `gorm:"not null;default:in_progress"`
	RewardGranted bool   `gorm:"not null;default:false"`
	CompletedAt   *time.Time
	JoinedAt      time.Time `gorm:"not null"`
}

// Daily sub-goal targets and star rewards shared by every generated
// DailyChallenge row.
const (
	DailyActivitiesTarget = 3
	DailySportTarget      = 1
	DailyHealthTarget     = 1

	DailyActivitiesReward = 10
	DailySportReward      = 5
	DailyHealthReward     = 5
)

// DailyChallenge holds one row per (user, date) with three independent
// sub-goals. Claimed flags gate the star rewards and never revert.
type DailyChallenge struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uint      `gorm:"not null;uniqueIndex:uidx_user_daily"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_daily"`

	ActivitiesCompleted int  `gorm:"not null;default:0"`
	ActivitiesTarget    int  `gorm:"not null;default:3"`
	ActivitiesReward    int  `gorm:"not null;default:10"`
	ActivitiesClaimed   bool `gorm:"not null;default:false"`

	SportCompleted int  `gorm:"not null;default:0"`
	SportTarget    int  `gorm:"not null;default:1"`
	SportReward    int  `gorm:"not null;default:5"`
	SportClaimed   bool `gorm:"not null;default:false"`

	HealthCompleted int  `gorm:"not null;default:0"`
	HealthTarget    int  `gorm:"not null;default:1"`
	HealthReward    int  `gorm:"not null;default:5"`
	HealthClaimed   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultChallenges is the seeded catalog; Seed skips names that already exist.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{Name: "Three in a Row", Description: "Complete any activity 3 days in a row", GoalType: GoalConsecutiveDays, GoalValue: 3, StarReward: 15},
		{Name: "Full Week", Description: "Complete any activity 7 days in a row", GoalType: GoalConsecutiveDays, GoalValue: 7, StarReward: 50},
		{Name: "Iron Month", Description: "Complete any activity 30 days in a row", GoalType: GoalConsecutiveDays, GoalValue: 30, StarReward: 250},
		{Name: "Ten Done", Description: "Log 10 completions in total", GoalType: GoalTotalCompletions, GoalValue: 10, StarReward: 20},
		{Name: "Fifty Done", Description: "Log 50 completions in total", GoalType: GoalTotalCompletions, GoalValue: 50, StarReward: 100},
	}
}

func ValidGoalType(goalType string) bool {
	switch goalType {
	case GoalConsecutiveDays, GoalTotalCompletions:
		return true
	default:
		return false
	}
}
