package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCronEndpointRequiresBearerSecret(t *testing.T) {
	app, _ := newTestApp(t, EnvProduction)

	response := bearerRequest(t, app, http.MethodGet, "/api/cron/notifications", "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = bearerRequest(t, app, http.MethodGet, "/api/cron/notifications", "wrong-secret")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestCronEndpointRunsAllRules(t *testing.T) {
	app, _ := newTestApp(t, EnvProduction)

	response := bearerRequest(t, app, http.MethodGet, "/api/cron/notifications", "test-cron-secret")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body)
	}
	summary, ok := body["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected summary object, got %v", body)
	}
	for _, rule := range []string{"lateActivities", "eventStart", "eventEnding"} {
		if _, present := summary[rule]; !present {
			t.Fatalf("summary missing %q: %v", rule, summary)
		}
	}
	if _, present := summary["timestamp"]; !present {
		t.Fatalf("summary missing timestamp: %v", summary)
	}
}

func TestManualTriggerForbiddenOutsideDevelopment(t *testing.T) {
	app, _ := newTestApp(t, EnvProduction)

	response := jsonRequest(t, app, http.MethodPost, "/api/cron/notifications", "",
		fiber.Map{"action": "late_activities"})
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 in production, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestManualTriggerInDevelopment(t *testing.T) {
	app, _ := newTestApp(t, EnvDevelopment)

	response := jsonRequest(t, app, http.MethodPost, "/api/cron/notifications", "",
		fiber.Map{"action": "event_start"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body)
	}
	result := body["result"].(map[string]any)
	if result["action"] != "event_start" {
		t.Fatalf("expected echoed action, got %v", result)
	}

	unknown := jsonRequest(t, app, http.MethodPost, "/api/cron/notifications", "",
		fiber.Map{"action": "reticulate_splines"})
	if unknown.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown action: expected 400, got %d", unknown.StatusCode)
	}
	unknown.Body.Close()
}

func TestManualTriggerAcceptsDashedActionNames(t *testing.T) {
	app, _ := newTestApp(t, EnvDevelopment)

	for _, action := range []string{"check-late", "notify-start", "notify-ending"} {
		response := jsonRequest(t, app, http.MethodPost, "/api/cron/notifications", "",
			fiber.Map{"action": action})
		if response.StatusCode != http.StatusOK {
			t.Fatalf("action %q: expected 200, got %d", action, response.StatusCode)
		}
		body := decodeBody(t, response)
		result, ok := body["result"].(map[string]any)
		if !ok || result["action"] != action {
			t.Fatalf("action %q: expected echoed action, got %v", action, body)
		}
	}
}

func TestManualTriggerAllRunsEveryRule(t *testing.T) {
	app, _ := newTestApp(t, EnvDevelopment)

	response := jsonRequest(t, app, http.MethodPost, "/api/cron/notifications", "",
		fiber.Map{"action": "all"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	result, ok := body["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object, got %v", body)
	}
	summary, ok := result["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected summary object, got %v", result)
	}
	for _, rule := range []string{"lateActivities", "eventStart", "eventEnding"} {
		if _, present := summary[rule]; !present {
			t.Fatalf("summary missing %q: %v", rule, summary)
		}
	}
}
