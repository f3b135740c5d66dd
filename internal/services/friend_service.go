package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

var (
	ErrSelfFriendRequest      = errors.New("cannot friend yourself")
	ErrFriendRequestExists    = errors.New("friend request already exists")
	ErrFriendRequestNotFound  = errors.New("friend request not found")
	ErrNotRequestAddressee    = errors.New("not the addressee of this request")
	ErrNotFriends             = errors.New("users are not friends")
	ErrFriendChallengeClosed  = errors.New("friend challenge is not active")
	ErrFriendChallengeMissing = errors.New("friend challenge not found")
	ErrInvalidChallengeGoal   = errors.New("goal value must be positive")
)

type FriendRepository interface {
	FindRequestBetween(userA uint, userB uint) (models.FriendRequest, bool, error)
	FindRequestByID(requestID uint) (models.FriendRequest, bool, error)
	CreateRequest(request *models.FriendRequest) error
	ListPendingForUser(userID uint) ([]models.FriendRequest, error)
	AcceptRequest(request *models.FriendRequest, respondedAt time.Time) error
	DeclineRequest(requestID uint, respondedAt time.Time) error
	ListFriendIDs(userID uint) ([]uint, error)
	AreFriends(userID uint, friendID uint) (bool, error)
	CreateFriendChallenge(challenge *models.FriendChallenge) error
	FindFriendChallengeByID(challengeID uint) (models.FriendChallenge, bool, error)
	ListFriendChallenges(userID uint) ([]models.FriendChallenge, error)
	SaveFriendChallenge(challenge *models.FriendChallenge) error
}

type FriendUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
}

type FriendNotificationRepository interface {
	Create(notification *models.Notification) error
}

type FriendService struct {
	friends       FriendRepository
	users         FriendUserRepository
	notifications FriendNotificationRepository
}

func NewFriendService(friends FriendRepository, users FriendUserRepository, notifications FriendNotificationRepository) *FriendService {
	return &FriendService{friends: friends, users: users, notifications: notifications}
}

func (service *FriendService) SendRequest(fromUser models.User, toEmail string, now time.Time) (models.FriendRequest, error) {
	normalizedEmail, err := NormalizeEmail(toEmail)
	if err != nil {
		return models.FriendRequest{}, err
	}

	target, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if target.ID == fromUser.ID {
		return models.FriendRequest{}, ErrSelfFriendRequest
	}

	_, exists, err := service.friends.FindRequestBetween(fromUser.ID, target.ID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if exists {
		return models.FriendRequest{}, ErrFriendRequestExists
	}

	request := models.FriendRequest{
		FromUserID: fromUser.ID,
		ToUserID:   target.ID,
		Status:     models.FriendRequestPending,
		CreatedAt:  now,
	}
	if err := service.friends.CreateRequest(&request); err != nil {
		return models.FriendRequest{}, err
	}

	notification := models.Notification{
		UserID:    target.ID,
		Kind:      models.NotificationFriendRequest,
		Title:     "New friend request",
		Body:      friendRequestBody(fromUser),
		CreatedAt: now,
	}
	if err := service.notifications.Create(&notification); err != nil {
		return models.FriendRequest{}, err
	}
	return request, nil
}

func (service *FriendService) Respond(userID uint, requestID uint, accept bool, now time.Time) error {
	request, found, err := service.friends.FindRequestByID(requestID)
	if err != nil {
		return err
	}
	if !found || request.Status != models.FriendRequestPending {
		return ErrFriendRequestNotFound
	}
	if request.ToUserID != userID {
		return ErrNotRequestAddressee
	}

	if accept {
		return service.friends.AcceptRequest(&request, now)
	}
	return service.friends.DeclineRequest(request.ID, now)
}

func (service *FriendService) ListPendingRequests(userID uint) ([]models.FriendRequest, error) {
	return service.friends.ListPendingForUser(userID)
}

func (service *FriendService) ListFriends(userID uint) ([]models.User, error) {
	friendIDs, err := service.friends.ListFriendIDs(userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(friendIDs))
	for _, friendID := range friendIDs {
		friend, err := service.users.FindByID(friendID)
		if err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

func (service *FriendService) CreateFriendChallenge(creatorID uint, friendID uint, name string, goalValue int, now time.Time) (models.FriendChallenge, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return models.FriendChallenge{}, ErrInvalidActivityName
	}
	if goalValue <= 0 {
		return models.FriendChallenge{}, ErrInvalidChallengeGoal
	}

	areFriends, err := service.friends.AreFriends(creatorID, friendID)
	if err != nil {
		return models.FriendChallenge{}, err
	}
	if !areFriends {
		return models.FriendChallenge{}, ErrNotFriends
	}

	challenge := models.FriendChallenge{
		CreatorID: creatorID,
		FriendID:  friendID,
		Name:      trimmedName,
		GoalValue: goalValue,
		Status:    models.FriendChallengeActive,
		CreatedAt: now,
	}
	if err := service.friends.CreateFriendChallenge(&challenge); err != nil {
		return models.FriendChallenge{}, err
	}
	return challenge, nil
}

func (service *FriendService) ListFriendChallenges(userID uint) ([]models.FriendChallenge, error) {
	return service.friends.ListFriendChallenges(userID)
}

// IncrementProgress bumps the caller's side by one, capped at the goal.
// The challenge completes when both participants reach it.
func (service *FriendService) IncrementProgress(userID uint, challengeID uint) (models.FriendChallenge, error) {
	challenge, found, err := service.friends.FindFriendChallengeByID(challengeID)
	if err != nil {
		return models.FriendChallenge{}, err
	}
	if !found {
		return models.FriendChallenge{}, ErrFriendChallengeMissing
	}
	if challenge.Status != models.FriendChallengeActive {
		return models.FriendChallenge{}, ErrFriendChallengeClosed
	}

	switch userID {
	case challenge.CreatorID:
		if challenge.CreatorProgress < challenge.GoalValue {
			challenge.CreatorProgress++
		}
	case challenge.FriendID:
		if challenge.FriendProgress < challenge.GoalValue {
			challenge.FriendProgress++
		}
	default:
		return models.FriendChallenge{}, ErrFriendChallengeMissing
	}

	if challenge.CreatorProgress >= challenge.GoalValue && challenge.FriendProgress >= challenge.GoalValue {
		challenge.Status = models.FriendChallengeCompleted
	}

	if err := service.friends.SaveFriendChallenge(&challenge); err != nil {
		return models.FriendChallenge{}, err
	}
	return challenge, nil
}

func friendRequestBody(fromUser models.User) string {
	name := strings.TrimSpace(fromUser.DisplayName)
	if name == "" {
		name = fromUser.Email
	}
	return name + " wants to be your friend."
}
