package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	notifications, err := handler.repositories.Notifications.ListByUser(user.ID, 50)
	if err != nil {
		return serverError(c, "list notifications", err)
	}

	payload := make([]fiber.Map, 0, len(notifications))
	for _, notification := range notifications {
		payload = append(payload, fiber.Map{
			"id":         notification.ID,
			"kind":       notification.Kind,
			"title":      notification.Title,
			"body":       notification.Body,
			"read":       notification.Read,
			"created_at": notification.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"notifications": payload})
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	notificationID, err := c.ParamsInt("id")
	if err != nil || notificationID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	marked, err := handler.repositories.Notifications.MarkRead(user.ID, uint(notificationID))
	if err != nil {
		return serverError(c, "mark notification read", err)
	}
	if !marked {
		return apiError(c, fiber.StatusNotFound, "notification not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}
