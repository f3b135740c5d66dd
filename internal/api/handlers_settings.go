package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/services"
)

type themeInput struct {
	Theme string `json:"theme" form:"theme"`
}

func (handler *Handler) UpdateTheme(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input themeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.settingsService.UpdateTheme(user.ID, input.Theme); err != nil {
		if errors.Is(err, services.ErrInvalidTheme) {
			return apiError(c, fiber.StatusBadRequest, "invalid theme")
		}
		return serverError(c, "update theme", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

type displayNameInput struct {
	DisplayName string `json:"display_name" form:"display_name"`
}

func (handler *Handler) UpdateDisplayName(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input displayNameInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.settingsService.UpdateDisplayName(user.ID, input.DisplayName); err != nil {
		if errors.Is(err, services.ErrInvalidDisplayName) {
			return apiError(c, fiber.StatusBadRequest, "display name is required")
		}
		return serverError(c, "update display name", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
