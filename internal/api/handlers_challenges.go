package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/models"
	"github.com/rowanvale/strive/internal/services"
)

func (handler *Handler) ListChallenges(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	views, err := handler.challengeService.ListWithProgress(user.ID)
	if err != nil {
		return serverError(c, "list challenges", err)
	}

	payload := make([]fiber.Map, 0, len(views))
	for _, view := range views {
		entry := fiber.Map{
			"id":          view.Challenge.ID,
			"name":        view.Challenge.Name,
			"description": view.Challenge.Description,
			"goal_type":   view.Challenge.GoalType,
			"goal_value":  view.Challenge.GoalValue,
			"star_reward": view.Challenge.StarReward,
			"joined":      view.Joined,
		}
		if view.Joined {
			entry["progress"] = view.Participation.Progress
			entry["status"] = view.Participation.Status
		}
		payload = append(payload, entry)
	}
	return c.JSON(fiber.Map{"challenges": payload})
}

func (handler *Handler) JoinChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	participation, err := handler.challengeService.Join(user.ID, uint(challengeID), time.Now().In(handler.location))
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			return apiError(c, fiber.StatusNotFound, "challenge not found")
		}
		return serverError(c, "join challenge", err)
	}

	return c.JSON(fiber.Map{
		"challenge_id": participation.ChallengeID,
		"progress":     participation.Progress,
		"status":       participation.Status,
	})
}

func (handler *Handler) GetDailyChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day := time.Now().In(handler.location)
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDayParam(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		day = parsed
	}

	daily, err := handler.progressService.DailyChallengeFor(user.ID, day)
	if err != nil {
		return serverError(c, "load daily challenge", err)
	}
	return c.JSON(fiber.Map{"daily_challenge": dailyChallengePayload(daily)})
}

type claimInput struct {
	Date string `json:"date" form:"date"`
	Goal string `json:"goal" form:"goal"`
}

func (handler *Handler) ClaimDailyReward(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input claimInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Date == "" || input.Goal == "" {
		return apiError(c, fiber.StatusBadRequest, "date and goal are required")
	}

	day, err := parseDayParam(input.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	daily, err := handler.progressService.ClaimDailyReward(user.ID, day, input.Goal)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownDailyGoal):
			return apiError(c, fiber.StatusBadRequest, "unknown goal")
		case errors.Is(err, services.ErrDailyChallengeNotFound):
			return apiError(c, fiber.StatusNotFound, "daily challenge not found")
		case errors.Is(err, services.ErrGoalNotMet):
			return apiError(c, fiber.StatusConflict, "goal not met")
		case errors.Is(err, services.ErrAlreadyClaimed):
			return apiError(c, fiber.StatusConflict, "reward already claimed")
		default:
			return serverError(c, "claim daily reward", err)
		}
	}

	return c.JSON(fiber.Map{"daily_challenge": dailyChallengePayload(daily)})
}

func dailyChallengePayload(daily models.DailyChallenge) fiber.Map {
	return fiber.Map{
		"date": daily.Date.Format("2006-01-02"),
		"activities": fiber.Map{
			"completed": daily.ActivitiesCompleted,
			"target":    daily.ActivitiesTarget,
			"reward":    daily.ActivitiesReward,
			"claimed":   daily.ActivitiesClaimed,
		},
		"sport": fiber.Map{
			"completed": daily.SportCompleted,
			"target":    daily.SportTarget,
			"reward":    daily.SportReward,
			"claimed":   daily.SportClaimed,
		},
		"health": fiber.Map{
			"completed": daily.HealthCompleted,
			"target":    daily.HealthTarget,
			"reward":    daily.HealthReward,
			"claimed":   daily.HealthClaimed,
		},
	}
}
