package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

// lateCutoffHour is the local hour after which an unlogged activity counts
// as late for the day.
const lateCutoffHour = 18

// endingLookahead matches the job's expected run interval so every event
// end falls into exactly one polling window.
const endingLookahead = time.Hour

type JobActivityRepository interface {
	ListStartedBy(day time.Time) ([]models.Activity, error)
	CompletedLogExists(activityID uint, day time.Time) (bool, error)
}

type JobUserRepository interface {
	ListIDs() ([]uint, error)
}

type JobNotificationRepository interface {
	EnsureWithDedupeKey(notification *models.Notification) (bool, error)
}

type JobEventRepository interface {
	ListStartedUnnotified(now time.Time) ([]models.Event, error)
	ListEndingUnnotified(now time.Time, lookahead time.Duration) ([]models.Event, error)
	MarkStartNotified(eventID uint) error
	MarkEndingNotified(eventID uint) error
}

// NotificationJobService evaluates the three scheduled notification rules.
// Every rule is idempotent: re-running over unmodified state creates
// nothing, so overlapping scheduler invocations are safe.
type NotificationJobService struct {
	activities    JobActivityRepository
	users         JobUserRepository
	notifications JobNotificationRepository
	events        JobEventRepository
	location      *time.Location
}

func NewNotificationJobService(
	activities JobActivityRepository,
	users JobUserRepository,
	notifications JobNotificationRepository,
	events JobEventRepository,
	location *time.Location,
) *NotificationJobService {
	if location == nil {
		location = time.UTC
	}
	return &NotificationJobService{
		activities:    activities,
		users:         users,
		notifications: notifications,
		events:        events,
		location:      location,
	}
}

type RuleOutcome struct {
	Created int
	Err     error
}

func (outcome RuleOutcome) Failed() bool {
	return outcome.Err != nil
}

type JobSummary struct {
	LateActivities RuleOutcome
	EventStart     RuleOutcome
	EventEnding    RuleOutcome
	Timestamp      time.Time
}

// RunAll fans the three rules out concurrently. A failing or panicking
// rule reports its error in the summary; the other rules still run to
// completion and report their own outcomes.
func (service *NotificationJobService) RunAll(ctx context.Context, now time.Time) JobSummary {
	summary := JobSummary{Timestamp: now}

	rules := []struct {
		outcome *RuleOutcome
		run     func(context.Context, time.Time) (int, error)
	}{
		{&summary.LateActivities, service.CheckLateActivities},
		{&summary.EventStart, service.NotifyEventStart},
		{&summary.EventEnding, service.NotifyEventEnding},
	}

	var wait sync.WaitGroup
	for _, rule := range rules {
		wait.Add(1)
		go func(outcome *RuleOutcome, run func(context.Context, time.Time) (int, error)) {
			defer wait.Done()
			defer func() {
				if recovered := recover(); recovered != nil {
					outcome.Err = fmt.Errorf("rule panicked: %v", recovered)
				}
			}()
			outcome.Created, outcome.Err = run(ctx, now)
		}(rule.outcome, rule.run)
	}
	wait.Wait()

	return summary
}

// CheckLateActivities flags every activity without a completed log for
// today once the local cutoff hour has passed. Keyed on
// (activity, date) via the notification dedupe key, so repeated runs do
// not duplicate.
func (service *NotificationJobService) CheckLateActivities(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	localNow := now.In(service.location)
	if localNow.Hour() < lateCutoffHour {
		return 0, nil
	}
	today := DateAtLocation(now, service.location)

	activities, err := service.activities.ListStartedBy(today)
	if err != nil {
		return 0, fmt.Errorf("list activities: %w", err)
	}

	created := 0
	for _, activity := range activities {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		completed, err := service.activities.CompletedLogExists(activity.ID, today)
		if err != nil {
			return created, fmt.Errorf("check log for activity %d: %w", activity.ID, err)
		}
		if completed {
			continue
		}

		dedupeKey := fmt.Sprintf("late:%d:%s", activity.ID, today.Format("2006-01-02"))
		notification := models.Notification{
			UserID:    activity.UserID,
			Kind:      models.NotificationLateActivity,
			Title:     "Activity not completed yet",
			Body:      fmt.Sprintf("You have not completed %q today.", activity.Name),
			DedupeKey: &dedupeKey,
			CreatedAt: now,
		}
		wasCreated, err := service.notifications.EnsureWithDedupeKey(&notification)
		if err != nil {
			return created, fmt.Errorf("notify late activity %d: %w", activity.ID, err)
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}

// NotifyEventStart announces every started, un-announced event to all
// users. The per-user dedupe key plus the StartNotified flag keep the rule
// safe under re-invocation even when a previous run died halfway.
func (service *NotificationJobService) NotifyEventStart(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	events, err := service.events.ListStartedUnnotified(now)
	if err != nil {
		return 0, fmt.Errorf("list started events: %w", err)
	}

	created := 0
	for _, event := range events {
		count, err := service.announceEvent(ctx, event, models.NotificationEventStart,
			fmt.Sprintf("event_start:%d", event.ID),
			"Event started",
			fmt.Sprintf("%s has started. %s", event.Title, event.Body),
			now)
		created += count
		if err != nil {
			return created, err
		}
		if err := service.events.MarkStartNotified(event.ID); err != nil {
			return created, fmt.Errorf("mark event %d start notified: %w", event.ID, err)
		}
	}
	return created, nil
}

// NotifyEventEnding is symmetric to NotifyEventStart for events whose end
// falls inside the lookahead window.
func (service *NotificationJobService) NotifyEventEnding(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	events, err := service.events.ListEndingUnnotified(now, endingLookahead)
	if err != nil {
		return 0, fmt.Errorf("list ending events: %w", err)
	}

	created := 0
	for _, event := range events {
		count, err := service.announceEvent(ctx, event, models.NotificationEventEnding,
			fmt.Sprintf("event_ending:%d", event.ID),
			"Event ending soon",
			fmt.Sprintf("%s ends at %s.", event.Title, event.EndsAt.In(service.location).Format("Jan 2 15:04")),
			now)
		created += count
		if err != nil {
			return created, err
		}
		if err := service.events.MarkEndingNotified(event.ID); err != nil {
			return created, fmt.Errorf("mark event %d ending notified: %w", event.ID, err)
		}
	}
	return created, nil
}

func (service *NotificationJobService) announceEvent(ctx context.Context, event models.Event, kind string, dedupeKey string, title string, body string, now time.Time) (int, error) {
	userIDs, err := service.users.ListIDs()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	created := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		notification := models.Notification{
			UserID:    userID,
			Kind:      kind,
			Title:     title,
			Body:      body,
			DedupeKey: &dedupeKey,
			CreatedAt: now,
		}
		wasCreated, err := service.notifications.EnsureWithDedupeKey(&notification)
		if err != nil {
			return created, fmt.Errorf("announce event %d to user %d: %w", event.ID, userID, err)
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}
