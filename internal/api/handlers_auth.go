package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/models"
	"github.com/rowanvale/strive/internal/services"
)

type credentialsInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := time.Now().In(handler.location)
	user, err := handler.authService.Register(input.Email, input.Password, input.DisplayName, now)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return apiError(c, fiber.StatusBadRequest, "invalid email")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "weak password")
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, "email already exists")
		default:
			return serverError(c, "register", err)
		}
	}

	if err := handler.setAuthCookie(c, &user, now); err != nil {
		return serverError(c, "issue session", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": userProfile(&user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.VerifyCredentials(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user, time.Now().In(handler.location)); err != nil {
		return serverError(c, "issue session", err)
	}
	return c.JSON(fiber.Map{"user": userProfile(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	unread, err := handler.repositories.Notifications.CountUnread(user.ID)
	if err != nil {
		return serverError(c, "count unread notifications", err)
	}

	profile := userProfile(user)
	profile["unread_notifications"] = unread
	return c.JSON(fiber.Map{"user": profile})
}

func userProfile(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"role":         user.Role,
		"theme":        user.Theme,
		"stars":        user.Stars,
	}
}
