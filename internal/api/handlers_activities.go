package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/services"
)

// ListActivities returns the session user's activities newest first.
func (handler *Handler) ListActivities(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	activities, err := handler.activityService.ListForUser(user.ID)
	if err != nil {
		return serverError(c, "list activities", err)
	}

	payload := make([]fiber.Map, 0, len(activities))
	for _, activity := range activities {
		payload = append(payload, fiber.Map{
			"id":    activity.ID,
			"name":  activity.Name,
			"icon":  activity.Icon,
			"color": activity.Color,
		})
	}
	return c.JSON(fiber.Map{"activities": payload})
}

type newActivityInput struct {
	Name      string `json:"name" form:"name"`
	Icon      string `json:"icon" form:"icon"`
	Color     string `json:"color" form:"color"`
	Category  string `json:"category" form:"category"`
	StartDate string `json:"start_date" form:"start_date"`
}

func (handler *Handler) CreateActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input newActivityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	var startDate time.Time
	if input.StartDate != "" {
		parsed, err := parseDayParam(input.StartDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		startDate = parsed
	}

	now := time.Now().In(handler.location)
	activity, err := handler.activityService.Create(user.ID, services.NewActivityInput{
		Name:      input.Name,
		Icon:      input.Icon,
		Color:     input.Color,
		Category:  input.Category,
		StartDate: startDate,
	}, now)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidActivityName),
			errors.Is(err, services.ErrInvalidActivityCategory):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return serverError(c, "create activity", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"activity": fiber.Map{
			"id":         activity.ID,
			"name":       activity.Name,
			"icon":       activity.Icon,
			"color":      activity.Color,
			"category":   activity.Category,
			"start_date": activity.StartDate.Format("2006-01-02"),
		},
	})
}

type toggleInput struct {
	Date string `json:"date" form:"date"`
	Done *bool  `json:"done" form:"done"`
}

// ToggleActivity flips a day's completion and returns the recomputed
// daily-challenge snapshot, streak and any unlocks.
func (handler *Handler) ToggleActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	activityID, err := c.ParamsInt("id")
	if err != nil || activityID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var input toggleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Date == "" || input.Done == nil {
		return apiError(c, fiber.StatusBadRequest, "date and done are required")
	}

	day, err := parseDayParam(input.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := handler.progressService.ToggleCompletion(user.ID, uint(activityID), day, *input.Done)
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return apiError(c, fiber.StatusNotFound, "activity not found")
		}
		return serverError(c, "toggle completion", err)
	}

	unlockedBadges := make([]fiber.Map, 0, len(result.UnlockedBadges))
	for _, badge := range result.UnlockedBadges {
		unlockedBadges = append(unlockedBadges, fiber.Map{"id": badge.ID, "name": badge.Name, "icon": badge.Icon})
	}
	completedChallenges := make([]fiber.Map, 0, len(result.CompletedChallenges))
	for _, challenge := range result.CompletedChallenges {
		completedChallenges = append(completedChallenges, fiber.Map{"id": challenge.ID, "name": challenge.Name, "star_reward": challenge.StarReward})
	}

	return c.JSON(fiber.Map{
		"completed":            result.Log.Completed,
		"streak":               result.Streak,
		"daily_challenge":      dailyChallengePayload(result.Daily),
		"unlocked_badges":      unlockedBadges,
		"completed_challenges": completedChallenges,
	})
}

func (handler *Handler) ActivityCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fromRaw := c.Query("from")
	toRaw := c.Query("to")
	if fromRaw == "" || toRaw == "" {
		return apiError(c, fiber.StatusBadRequest, "from and to are required")
	}

	from, err := parseDayParam(fromRaw, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := parseDayParam(toRaw, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "to must not precede from")
	}

	calendar, err := handler.activityService.CompletionCalendar(user.ID, from, to)
	if err != nil {
		return serverError(c, "load calendar", err)
	}
	return c.JSON(fiber.Map{"days": calendar})
}
