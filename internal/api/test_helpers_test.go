package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanvale/strive/internal/db"
	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, environment string) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "strive-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(database); err != nil {
		t.Fatalf("seed: %v", err)
	}

	handler := NewHandler(database, Config{
		SecretKey:   "test-secret-key",
		CronSecret:  "test-cron-secret",
		Environment: environment,
		Location:    time.UTC,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, authCookie string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	decoded := make(map[string]any)
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, response.StatusCode)
	}
	response.Body.Close()

	cookie := extractAuthCookie(response)
	if cookie == "" {
		t.Fatalf("register %s: no auth cookie issued", email)
	}
	return cookie
}

func extractAuthCookie(response *http.Response) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	return ""
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := jsonRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, response.StatusCode)
	}
	response.Body.Close()

	cookie := extractAuthCookie(response)
	if cookie == "" {
		t.Fatalf("login %s: no auth cookie issued", email)
	}
	return cookie
}

func promoteToAdmin(t *testing.T, database *gorm.DB, email string) {
	t.Helper()

	result := database.Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Update("role", models.RoleAdmin)
	if result.Error != nil {
		t.Fatalf("promote %s: %v", email, result.Error)
	}
	if result.RowsAffected == 0 {
		t.Fatalf("promote %s: user not found", email)
	}
}

func bearerRequest(t *testing.T, app *fiber.App, method string, path string, token string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}
