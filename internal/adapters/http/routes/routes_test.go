package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/config"
	"geoattend/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "routes-test-secret"

// newRoutedApp builds the full routed application over an in-memory store
func newRoutedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           testSecret,
			RefreshSecret:    "routes-test-refresh",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
	}

	app := fiber.New()
	Setup(app, db, cfg)
	return app, db
}

func bearerFor(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := jwt.GenerateAccessToken(userID, "user@geoattend.app", "Test User", role, testSecret, 60)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}

func request(t *testing.T, app *fiber.App, method, path, bearer, body string) int {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAttendanceListingsOpenToEmployees(t *testing.T) {
	app, _ := newRoutedApp(t)
	employee := bearerFor(t, 1, models.RoleEmployee)

	if status := request(t, app, http.MethodGet, "/api/v1/attendance/today", employee, ""); status != http.StatusOK {
		t.Errorf("employee GET /attendance/today status = %d, want 200", status)
	}

	path := "/api/v1/attendance/date-range?start_date=2025-06-01&end_date=2025-06-30"
	if status := request(t, app, http.MethodGet, path, employee, ""); status != http.StatusOK {
		t.Errorf("employee GET /attendance/date-range status = %d, want 200", status)
	}

	// Still closed to unauthenticated callers
	if status := request(t, app, http.MethodGet, "/api/v1/attendance/today", "", ""); status != http.StatusUnauthorized {
		t.Errorf("anonymous GET /attendance/today status = %d, want 401", status)
	}
}

func TestUserStatusRouteMethodAndGuard(t *testing.T) {
	app, db := newRoutedApp(t)

	user := &models.User{
		Name:     "Maria Lopez",
		Email:    "maria@geoattend.app",
		Password: "irrelevant",
		Role:     models.RoleEmployee,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	admin := bearerFor(t, 99, models.RoleAdmin)
	employee := bearerFor(t, 1, models.RoleEmployee)
	path := fmt.Sprintf("/api/v1/users/%d/status", user.ID)
	body := `{"is_active": false}`

	if status := request(t, app, http.MethodPut, path, admin, body); status != http.StatusOK {
		t.Errorf("admin PUT %s status = %d, want 200", path, status)
	}

	if status := request(t, app, http.MethodPut, path, employee, body); status != http.StatusForbidden {
		t.Errorf("employee PUT %s status = %d, want 403", path, status)
	}
}
