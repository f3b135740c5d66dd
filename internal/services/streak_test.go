package services

import (
	"testing"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

func day(year int, month time.Month, dayOfMonth int, location *time.Location) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, location)
}

func completedLog(date time.Time) models.ActivityLog {
	return models.ActivityLog{Date: date, Completed: true}
}

func TestStreakLengthCountsConsecutiveDays(t *testing.T) {
	evaluation := day(2026, time.March, 10, time.UTC)
	logs := []models.ActivityLog{
		completedLog(day(2026, time.March, 8, time.UTC)),
		completedLog(day(2026, time.March, 9, time.UTC)),
		completedLog(day(2026, time.March, 10, time.UTC)),
	}

	if got := StreakLength(logs, evaluation, time.UTC); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakLengthBreaksOnGap(t *testing.T) {
	evaluation := day(2026, time.March, 10, time.UTC)
	logs := []models.ActivityLog{
		completedLog(day(2026, time.March, 6, time.UTC)),
		completedLog(day(2026, time.March, 7, time.UTC)),
		completedLog(day(2026, time.March, 9, time.UTC)),
		completedLog(day(2026, time.March, 10, time.UTC)),
	}

	if got := StreakLength(logs, evaluation, time.UTC); got != 2 {
		t.Fatalf("expected streak 2 after the March 8 gap, got %d", got)
	}
}

func TestStreakLengthToleratesMissingEvaluationDay(t *testing.T) {
	// Yesterday's streak still counts before today's completion is logged.
	evaluation := day(2026, time.March, 10, time.UTC)
	logs := []models.ActivityLog{
		completedLog(day(2026, time.March, 8, time.UTC)),
		completedLog(day(2026, time.March, 9, time.UTC)),
	}

	if got := StreakLength(logs, evaluation, time.UTC); got != 2 {
		t.Fatalf("expected streak 2 ending yesterday, got %d", got)
	}
}

func TestStreakLengthIgnoresIncompleteLogs(t *testing.T) {
	evaluation := day(2026, time.March, 10, time.UTC)
	logs := []models.ActivityLog{
		completedLog(day(2026, time.March, 9, time.UTC)),
		{Date: day(2026, time.March, 10, time.UTC), Completed: false},
	}

	if got := StreakLength(logs, evaluation, time.UTC); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestStreakLengthEmpty(t *testing.T) {
	if got := StreakLength(nil, day(2026, time.March, 10, time.UTC), time.UTC); got != 0 {
		t.Fatalf("expected streak 0 for no logs, got %d", got)
	}
}

func TestStreakLengthUsesCalendarDaysInLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on March 9 is already March 10 in Berlin.
	logs := []models.ActivityLog{
		completedLog(time.Date(2026, time.March, 8, 23, 30, 0, 0, time.UTC)),
		completedLog(time.Date(2026, time.March, 9, 23, 30, 0, 0, time.UTC)),
	}
	evaluation := time.Date(2026, time.March, 10, 12, 0, 0, 0, berlin)

	if got := StreakLength(logs, evaluation, berlin); got != 2 {
		t.Fatalf("expected streak 2 across the Berlin midnight boundary, got %d", got)
	}
}

func TestCountActiveDaysDeduplicatesWithinDay(t *testing.T) {
	logs := []models.ActivityLog{
		completedLog(day(2026, time.March, 8, time.UTC)),
		completedLog(day(2026, time.March, 8, time.UTC)),
		completedLog(day(2026, time.March, 12, time.UTC)),
		{Date: day(2026, time.March, 13, time.UTC), Completed: false},
	}

	if got := CountActiveDays(logs, time.UTC); got != 2 {
		t.Fatalf("expected 2 active days, got %d", got)
	}
}

func TestDateAtLocationTruncates(t *testing.T) {
	value := time.Date(2026, time.March, 10, 18, 45, 12, 0, time.UTC)
	truncated := DateAtLocation(value, time.UTC)
	if !truncated.Equal(day(2026, time.March, 10, time.UTC)) {
		t.Fatalf("expected day start, got %v", truncated)
	}
}
