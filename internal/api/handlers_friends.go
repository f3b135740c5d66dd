package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/models"
	"github.com/rowanvale/strive/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) ListFriends(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	friends, err := handler.friendService.ListFriends(user.ID)
	if err != nil {
		return serverError(c, "list friends", err)
	}

	payload := make([]fiber.Map, 0, len(friends))
	for _, friend := range friends {
		payload = append(payload, fiber.Map{
			"id":           friend.ID,
			"display_name": friend.DisplayName,
			"email":        friend.Email,
		})
	}
	return c.JSON(fiber.Map{"friends": payload})
}

func (handler *Handler) ListFriendRequests(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requests, err := handler.friendService.ListPendingRequests(user.ID)
	if err != nil {
		return serverError(c, "list friend requests", err)
	}

	payload := make([]fiber.Map, 0, len(requests))
	for _, request := range requests {
		payload = append(payload, fiber.Map{
			"id":           request.ID,
			"from_user_id": request.FromUserID,
			"created_at":   request.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"requests": payload})
}

type friendRequestInput struct {
	Email string `json:"email" form:"email"`
}

func (handler *Handler) SendFriendRequest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input friendRequestInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	request, err := handler.friendService.SendRequest(*user, input.Email, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return apiError(c, fiber.StatusBadRequest, "invalid email")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apiError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrSelfFriendRequest):
			return apiError(c, fiber.StatusBadRequest, "cannot friend yourself")
		case errors.Is(err, services.ErrFriendRequestExists):
			return apiError(c, fiber.StatusConflict, "friend request already exists")
		default:
			return serverError(c, "send friend request", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request_id": request.ID})
}

type respondInput struct {
	Accept *bool `json:"accept" form:"accept"`
}

func (handler *Handler) RespondFriendRequest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var input respondInput
	if err := c.BodyParser(&input); err != nil || input.Accept == nil {
		return apiError(c, fiber.StatusBadRequest, "accept is required")
	}

	err = handler.friendService.Respond(user.ID, uint(requestID), *input.Accept, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFriendRequestNotFound):
			return apiError(c, fiber.StatusNotFound, "friend request not found")
		case errors.Is(err, services.ErrNotRequestAddressee):
			return apiError(c, fiber.StatusForbidden, "not the addressee of this request")
		default:
			return serverError(c, "respond to friend request", err)
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

type friendChallengeInput struct {
	FriendID  uint   `json:"friend_id" form:"friend_id"`
	Name      string `json:"name" form:"name"`
	GoalValue int    `json:"goal_value" form:"goal_value"`
}

func (handler *Handler) CreateFriendChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input friendChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	challenge, err := handler.friendService.CreateFriendChallenge(
		user.ID, input.FriendID, input.Name, input.GoalValue, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidActivityName),
			errors.Is(err, services.ErrInvalidChallengeGoal):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFriends):
			return apiError(c, fiber.StatusForbidden, "users are not friends")
		default:
			return serverError(c, "create friend challenge", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"challenge": friendChallengePayload(challenge)})
}

func (handler *Handler) ListFriendChallenges(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	challenges, err := handler.friendService.ListFriendChallenges(user.ID)
	if err != nil {
		return serverError(c, "list friend challenges", err)
	}

	payload := make([]fiber.Map, 0, len(challenges))
	for _, challenge := range challenges {
		payload = append(payload, friendChallengePayload(challenge))
	}
	return c.JSON(fiber.Map{"challenges": payload})
}

func (handler *Handler) IncrementFriendChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	challenge, err := handler.friendService.IncrementProgress(user.ID, uint(challengeID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFriendChallengeMissing):
			return apiError(c, fiber.StatusNotFound, "friend challenge not found")
		case errors.Is(err, services.ErrFriendChallengeClosed):
			return apiError(c, fiber.StatusConflict, "friend challenge is not active")
		default:
			return serverError(c, "increment friend challenge", err)
		}
	}
	return c.JSON(fiber.Map{"challenge": friendChallengePayload(challenge)})
}

func friendChallengePayload(challenge models.FriendChallenge) fiber.Map {
	return fiber.Map{
		"id":               challenge.ID,
		"creator_id":       challenge.CreatorID,
		"friend_id":        challenge.FriendID,
		"name":             challenge.Name,
		"goal_value":       challenge.GoalValue,
		"creator_progress": challenge.CreatorProgress,
		"friend_progress":  challenge.FriendProgress,
		"status":           challenge.Status,
	}
}
