package db

import (
	"testing"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

func TestAcceptRequestRecordsBothDirections(t *testing.T) {
	database := newTestDB(t)
	repository := NewFriendRepository(database)

	request := models.FriendRequest{FromUserID: 1, ToUserID: 2, Status: models.FriendRequestPending, CreatedAt: time.Now()}
	if err := repository.CreateRequest(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := repository.AcceptRequest(&request, time.Now()); err != nil {
		t.Fatalf("accept request: %v", err)
	}

	for _, pair := range [][2]uint{{1, 2}, {2, 1}} {
		areFriends, err := repository.AreFriends(pair[0], pair[1])
		if err != nil {
			t.Fatalf("are friends %v: %v", pair, err)
		}
		if !areFriends {
			t.Fatalf("friendship missing in direction %v", pair)
		}
	}

	updated, found, err := repository.FindRequestByID(request.ID)
	if err != nil || !found {
		t.Fatalf("reload request: found=%v err=%v", found, err)
	}
	if updated.Status != models.FriendRequestAccepted {
		t.Fatalf("expected accepted status, got %q", updated.Status)
	}
	if updated.RespondedAt == nil {
		t.Fatal("responded_at not recorded")
	}
}

func TestFindRequestBetweenIgnoresDeclined(t *testing.T) {
	database := newTestDB(t)
	repository := NewFriendRepository(database)

	request := models.FriendRequest{FromUserID: 1, ToUserID: 2, Status: models.FriendRequestPending, CreatedAt: time.Now()}
	if err := repository.CreateRequest(&request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	if _, found, err := repository.FindRequestBetween(2, 1); err != nil || !found {
		t.Fatalf("expected pending request found in reverse direction, found=%v err=%v", found, err)
	}

	if err := repository.DeclineRequest(request.ID, time.Now()); err != nil {
		t.Fatalf("decline request: %v", err)
	}

	if _, found, err := repository.FindRequestBetween(1, 2); err != nil || found {
		t.Fatalf("declined request still blocks new ones, found=%v err=%v", found, err)
	}

	// A retry after a decline is allowed.
	retry := models.FriendRequest{FromUserID: 1, ToUserID: 2, Status: models.FriendRequestPending, CreatedAt: time.Now()}
	if err := repository.CreateRequest(&retry); err != nil {
		t.Fatalf("retry after decline rejected: %v", err)
	}
}
