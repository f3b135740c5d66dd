package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/models"
)

type eventInput struct {
	Title    string `json:"title" form:"title"`
	Body     string `json:"body" form:"body"`
	StartsAt string `json:"starts_at" form:"starts_at"`
	EndsAt   string `json:"ends_at" form:"ends_at"`
}

func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	var input eventInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Title == "" {
		return apiError(c, fiber.StatusBadRequest, "title is required")
	}

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid starts_at, expected RFC 3339")
	}
	endsAt, err := time.Parse(time.RFC3339, input.EndsAt)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid ends_at, expected RFC 3339")
	}
	if !endsAt.After(startsAt) {
		return apiError(c, fiber.StatusBadRequest, "ends_at must be after starts_at")
	}

	event := models.Event{
		Title:    input.Title,
		Body:     input.Body,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	if err := handler.repositories.Events.Create(&event); err != nil {
		return serverError(c, "create event", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": eventPayload(event)})
}

func (handler *Handler) ListEvents(c *fiber.Ctx) error {
	events, err := handler.repositories.Events.List()
	if err != nil {
		return serverError(c, "list events", err)
	}

	payload := make([]fiber.Map, 0, len(events))
	for _, event := range events {
		payload = append(payload, eventPayload(event))
	}
	return c.JSON(fiber.Map{"events": payload})
}

func eventPayload(event models.Event) fiber.Map {
	return fiber.Map{
		"id":        event.ID,
		"title":     event.Title,
		"body":      event.Body,
		"starts_at": event.StartsAt.UTC().Format(time.RFC3339),
		"ends_at":   event.EndsAt.UTC().Format(time.RFC3339),
	}
}
