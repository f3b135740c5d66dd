package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serverError logs the underlying cause and returns a generic envelope so
// infrastructure details never reach the caller.
func serverError(c *fiber.Ctx, context string, err error) error {
	log.Printf("%s %s: %s: %v", c.Method(), c.Path(), context, err)
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}
