package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/models"
)

func TestUpdateThemePersistsPerUser(t *testing.T) {
	app, database := newTestApp(t, EnvProduction)
	caseyCookie := registerTestUser(t, app, "casey@example.com", "sturdy-pass1")
	robinCookie := registerTestUser(t, app, "robin@example.com", "sturdy-pass1")

	response := jsonRequest(t, app, http.MethodPost, "/api/settings/theme", caseyCookie,
		fiber.Map{"theme": "dark"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	response.Body.Close()

	var casey, robin models.User
	if err := database.Where("email = ?", "casey@example.com").First(&casey).Error; err != nil {
		t.Fatalf("reload casey: %v", err)
	}
	if err := database.Where("email = ?", "robin@example.com").First(&robin).Error; err != nil {
		t.Fatalf("reload robin: %v", err)
	}
	if casey.Theme != models.ThemeDark {
		t.Fatalf("expected dark theme persisted, got %q", casey.Theme)
	}
	if robin.Theme != models.DefaultTheme {
		t.Fatalf("theme change leaked to another user: %q", robin.Theme)
	}

	invalid := jsonRequest(t, app, http.MethodPost, "/api/settings/theme", robinCookie,
		fiber.Map{"theme": "sunset"})
	if invalid.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid theme: expected 400, got %d", invalid.StatusCode)
	}
	invalid.Body.Close()

	me := jsonRequest(t, app, http.MethodGet, "/api/me", caseyCookie, nil)
	body := decodeBody(t, me)
	if theme := body["user"].(map[string]any)["theme"]; theme != "dark" {
		t.Fatalf("profile does not reflect the stored theme: %v", theme)
	}
}

func TestUpdateDisplayName(t *testing.T) {
	app, _ := newTestApp(t, EnvProduction)
	cookie := registerTestUser(t, app, "casey@example.com", "sturdy-pass1")

	response := jsonRequest(t, app, http.MethodPost, "/api/settings/display-name", cookie,
		fiber.Map{"display_name": "  Casey R  "})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	response.Body.Close()

	me := jsonRequest(t, app, http.MethodGet, "/api/me", cookie, nil)
	body := decodeBody(t, me)
	if name := body["user"].(map[string]any)["display_name"]; name != "Casey R" {
		t.Fatalf("expected trimmed display name, got %v", name)
	}

	blank := jsonRequest(t, app, http.MethodPost, "/api/settings/display-name", cookie,
		fiber.Map{"display_name": "   "})
	if blank.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400, got %d", blank.StatusCode)
	}
	blank.Body.Close()
}
