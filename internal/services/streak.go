package services

import (
	"time"

	"github.com/rowanvale/strive/internal/models"
)

// StreakLength returns the number of consecutive calendar days with a
// completed log, ending at the evaluation day or, when the evaluation day
// itself has no completion, at the day before it.
func StreakLength(logs []models.ActivityLog, evaluationDay time.Time, location *time.Location) int {
	completed := make(map[time.Time]bool, len(logs))
	for _, entry := range logs {
		if entry.Completed {
			completed[DateAtLocation(entry.Date, location)] = true
		}
	}

	cursor := DateAtLocation(evaluationDay, location)
	if !completed[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for completed[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// CountActiveDays returns the number of distinct calendar days carrying at
// least one completed log.
func CountActiveDays(logs []models.ActivityLog, location *time.Location) int {
	days := make(map[time.Time]bool)
	for _, entry := range logs {
		if entry.Completed {
			days[DateAtLocation(entry.Date, location)] = true
		}
	}
	return len(days)
}
