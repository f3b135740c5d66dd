package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListBadges(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	catalog, err := handler.repositories.Badges.ListCatalog()
	if err != nil {
		return serverError(c, "list badges", err)
	}
	unlocked, err := handler.repositories.Badges.ListUnlockedBadgeIDs(user.ID)
	if err != nil {
		return serverError(c, "list unlocked badges", err)
	}

	payload := make([]fiber.Map, 0, len(catalog))
	for _, badge := range catalog {
		payload = append(payload, fiber.Map{
			"id":             badge.ID,
			"name":           badge.Name,
			"description":    badge.Description,
			"icon":           badge.Icon,
			"condition_type": badge.ConditionType,
			"threshold":      badge.Threshold,
			"unlocked":       unlocked[badge.ID],
		})
	}
	return c.JSON(fiber.Map{"badges": payload})
}
