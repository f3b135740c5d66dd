package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

type stubJobActivities struct {
	activities []models.Activity
	completed  map[uint]bool
	listErr    error
}

func (stub *stubJobActivities) ListStartedBy(day time.Time) ([]models.Activity, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.activities, nil
}

func (stub *stubJobActivities) CompletedLogExists(activityID uint, day time.Time) (bool, error) {
	return stub.completed[activityID], nil
}

type stubJobUsers struct {
	ids []uint
}

func (stub *stubJobUsers) ListIDs() ([]uint, error) {
	return stub.ids, nil
}

type stubJobNotifications struct {
	seen    map[string]bool
	created []models.Notification
}

func newStubJobNotifications() *stubJobNotifications {
	return &stubJobNotifications{seen: make(map[string]bool)}
}

func (stub *stubJobNotifications) EnsureWithDedupeKey(notification *models.Notification) (bool, error) {
	key := ""
	if notification.DedupeKey != nil {
		key = *notification.DedupeKey
	}
	compound := fmt.Sprintf("%d|%s", notification.UserID, key)
	if stub.seen[compound] {
		return false, nil
	}
	stub.seen[compound] = true
	stub.created = append(stub.created, *notification)
	return true, nil
}

type stubJobEvents struct {
	started        []models.Event
	ending         []models.Event
	startNotified  []uint
	endingNotified []uint
}

func (stub *stubJobEvents) ListStartedUnnotified(now time.Time) ([]models.Event, error) {
	remaining := make([]models.Event, 0, len(stub.started))
	for _, event := range stub.started {
		if !contains(stub.startNotified, event.ID) {
			remaining = append(remaining, event)
		}
	}
	return remaining, nil
}

func (stub *stubJobEvents) ListEndingUnnotified(now time.Time, lookahead time.Duration) ([]models.Event, error) {
	remaining := make([]models.Event, 0, len(stub.ending))
	for _, event := range stub.ending {
		if !contains(stub.endingNotified, event.ID) {
			remaining = append(remaining, event)
		}
	}
	return remaining, nil
}

func (stub *stubJobEvents) MarkStartNotified(eventID uint) error {
	stub.startNotified = append(stub.startNotified, eventID)
	return nil
}

func (stub *stubJobEvents) MarkEndingNotified(eventID uint) error {
	stub.endingNotified = append(stub.endingNotified, eventID)
	return nil
}

func contains(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func newJobService(activities *stubJobActivities, users *stubJobUsers, notifications *stubJobNotifications, events *stubJobEvents) *NotificationJobService {
	if activities == nil {
		activities = &stubJobActivities{completed: map[uint]bool{}}
	}
	if users == nil {
		users = &stubJobUsers{}
	}
	if notifications == nil {
		notifications = newStubJobNotifications()
	}
	if events == nil {
		events = &stubJobEvents{}
	}
	return NewNotificationJobService(activities, users, notifications, events, time.UTC)
}

func TestCheckLateActivitiesSkipsBeforeCutoff(t *testing.T) {
	activities := &stubJobActivities{
		activities: []models.Activity{{ID: 1, UserID: 7, Name: "Run"}},
		completed:  map[uint]bool{},
	}
	notifications := newStubJobNotifications()
	service := newJobService(activities, nil, notifications, nil)

	morning := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	created, err := service.CheckLateActivities(context.Background(), morning)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if created != 0 || len(notifications.created) != 0 {
		t.Fatalf("expected nothing before the cutoff hour, created=%d", created)
	}
}

func TestCheckLateActivitiesIsIdempotent(t *testing.T) {
	activities := &stubJobActivities{
		activities: []models.Activity{
			{ID: 1, UserID: 7, Name: "Run"},
			{ID: 2, UserID: 7, Name: "Read"},
		},
		completed: map[uint]bool{2: true},
	}
	notifications := newStubJobNotifications()
	service := newJobService(activities, nil, notifications, nil)

	evening := time.Date(2026, time.March, 10, 19, 30, 0, 0, time.UTC)
	created, err := service.CheckLateActivities(context.Background(), evening)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected one notification for the incomplete activity, got %d", created)
	}
	if notifications.created[0].Kind != models.NotificationLateActivity {
		t.Fatalf("unexpected kind %q", notifications.created[0].Kind)
	}

	createdAgain, err := service.CheckLateActivities(context.Background(), evening)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if createdAgain != 0 {
		t.Fatalf("second run duplicated notifications: %d", createdAgain)
	}
}

func TestNotifyEventStartAnnouncesToAllUsersOnce(t *testing.T) {
	users := &stubJobUsers{ids: []uint{1, 2, 3}}
	events := &stubJobEvents{
		started: []models.Event{{ID: 10, Title: "Spring Sprint", Body: "Two weeks of daily goals."}},
	}
	notifications := newStubJobNotifications()
	service := newJobService(nil, users, notifications, events)

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	created, err := service.NotifyEventStart(context.Background(), now)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected one notification per user, got %d", created)
	}
	if !contains(events.startNotified, 10) {
		t.Fatal("event was not marked start-notified")
	}

	createdAgain, err := service.NotifyEventStart(context.Background(), now)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if createdAgain != 0 {
		t.Fatalf("second run duplicated announcements: %d", createdAgain)
	}
}

func TestNotifyEventEndingMarksAndDedupes(t *testing.T) {
	users := &stubJobUsers{ids: []uint{1}}
	events := &stubJobEvents{
		ending: []models.Event{{ID: 11, Title: "Spring Sprint", EndsAt: time.Date(2026, time.March, 10, 13, 0, 0, 0, time.UTC)}},
	}
	notifications := newStubJobNotifications()
	service := newJobService(nil, users, notifications, events)

	now := time.Date(2026, time.March, 10, 12, 30, 0, 0, time.UTC)
	created, err := service.NotifyEventEnding(context.Background(), now)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected one ending notification, got %d", created)
	}
	if notifications.created[0].Kind != models.NotificationEventEnding {
		t.Fatalf("unexpected kind %q", notifications.created[0].Kind)
	}
	if !contains(events.endingNotified, 11) {
		t.Fatal("event was not marked ending-notified")
	}
}

func TestRunAllIsolatesFailingRule(t *testing.T) {
	activities := &stubJobActivities{listErr: errors.New("db gone")}
	users := &stubJobUsers{ids: []uint{1}}
	events := &stubJobEvents{
		started: []models.Event{{ID: 12, Title: "Resilience", Body: "Still announced."}},
	}
	notifications := newStubJobNotifications()
	service := newJobService(activities, users, notifications, events)

	evening := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	summary := service.RunAll(context.Background(), evening)

	if !summary.LateActivities.Failed() {
		t.Fatal("expected late-activities rule to report its failure")
	}
	if summary.EventStart.Failed() {
		t.Fatalf("event-start rule must not be affected: %v", summary.EventStart.Err)
	}
	if summary.EventStart.Created != 1 {
		t.Fatalf("expected event-start to still announce, got %d", summary.EventStart.Created)
	}
	if summary.EventEnding.Failed() {
		t.Fatalf("event-ending rule must not be affected: %v", summary.EventEnding.Err)
	}
	if !summary.Timestamp.Equal(evening) {
		t.Fatalf("summary timestamp mismatch: %v", summary.Timestamp)
	}
}

func TestRunAllHonorsCancelledContext(t *testing.T) {
	service := newJobService(nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := service.RunAll(ctx, time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC))
	if !summary.LateActivities.Failed() || !summary.EventStart.Failed() || !summary.EventEnding.Failed() {
		t.Fatalf("expected every rule to report the cancelled context, got %+v", summary)
	}
}
