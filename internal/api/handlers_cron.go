package api

import (
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/services"
)

// RunNotificationJob is the scheduler entry point. Callers authenticate
// with a bearer token matching the configured cron secret.
func (handler *Handler) RunNotificationJob(c *fiber.Ctx) error {
	if !handler.cronAuthorized(c) {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary := handler.notificationJob.RunAll(c.Context(), time.Now())
	logJobSummary(summary)

	message := "notification job completed"
	if summary.LateActivities.Failed() || summary.EventStart.Failed() || summary.EventEnding.Failed() {
		message = "notification job completed with errors"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"summary": jobSummaryPayload(summary),
	})
}

type cronTriggerInput struct {
	Action string `json:"action" form:"action"`
}

// TriggerNotificationRule runs one rule, or all of them, by name.
// Development only. Rules answer to both the dashed action names and
// their internal underscore names.
func (handler *Handler) TriggerNotificationRule(c *fiber.Ctx) error {
	if handler.environment != EnvDevelopment {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	var input cronTriggerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := time.Now()
	var run func() (int, error)
	switch input.Action {
	case "check-late", "late_activities":
		run = func() (int, error) { return handler.notificationJob.CheckLateActivities(c.Context(), now) }
	case "notify-start", "event_start":
		run = func() (int, error) { return handler.notificationJob.NotifyEventStart(c.Context(), now) }
	case "notify-ending", "event_ending":
		run = func() (int, error) { return handler.notificationJob.NotifyEventEnding(c.Context(), now) }
	case "all":
		summary := handler.notificationJob.RunAll(c.Context(), now)
		logJobSummary(summary)
		return c.JSON(fiber.Map{
			"success": true,
			"result":  fiber.Map{"action": input.Action, "summary": jobSummaryPayload(summary)},
		})
	default:
		return apiError(c, fiber.StatusBadRequest, "unknown action")
	}

	created, err := run()
	if err != nil {
		return serverError(c, "run notification rule", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  fiber.Map{"action": input.Action, "created": created},
	})
}

func (handler *Handler) cronAuthorized(c *fiber.Ctx) bool {
	if handler.cronSecret == "" {
		return false
	}
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(handler.cronSecret)) == 1
}

func jobSummaryPayload(summary services.JobSummary) fiber.Map {
	return fiber.Map{
		"lateActivities": ruleOutcomePayload(summary.LateActivities),
		"eventStart":     ruleOutcomePayload(summary.EventStart),
		"eventEnding":    ruleOutcomePayload(summary.EventEnding),
		"timestamp":      summary.Timestamp.UTC().Format(time.RFC3339),
	}
}

func ruleOutcomePayload(outcome services.RuleOutcome) fiber.Map {
	payload := fiber.Map{"created": outcome.Created, "ok": !outcome.Failed()}
	if outcome.Failed() {
		payload["error"] = outcome.Err.Error()
	}
	return payload
}

func logJobSummary(summary services.JobSummary) {
	for name, outcome := range map[string]services.RuleOutcome{
		"late_activities": summary.LateActivities,
		"event_start":     summary.EventStart,
		"event_ending":    summary.EventEnding,
	} {
		if outcome.Failed() {
			log.Printf("notification job: rule %s failed: %v", name, outcome.Err)
		}
	}
}
