package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newAttendanceApp wires the attendance handler against an in-memory store
// with an always-open schedule, behind a stub that plays the auth middleware's
// part of filling the user locals.
func newAttendanceApp(t *testing.T) (*fiber.App, *services.SettingsService) {
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

	settingsService := services.NewSettingsService(repositories.NewSettingRepository(db))

	// A day-wide tolerance keeps the schedule policy out of the way so the
	// lifecycle statuses are what these tests observe
	err = settingsService.UpdateWorkSchedule(context.Background(), &services.WorkScheduleInput{
		StartTime:        "00:00",
		EndTime:          "23:59",
		ToleranceMinutes: 1440,
	})
	if err != nil {
		t.Fatalf("failed to open the schedule: %v", err)
	}

	attendanceService := services.NewAttendanceService(
		repositories.NewAttendanceRepository(db), settingsService)
	handler := NewAttendanceHandler(attendanceService)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		c.Locals("name", "Maria Lopez")
		return c.Next()
	})
	app.Post("/attendance/checkin", handler.CheckIn)
	app.Put("/attendance/checkout/:id", handler.CheckOut)

	return app, settingsService
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, raw)
		}
	}
	return resp.StatusCode, parsed
}

func recordID(t *testing.T, body map[string]interface{}) int {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	record, ok := data["attendance"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no attendance object: %v", body)
	}
	id, ok := record["id"].(float64)
	if !ok {
		t.Fatalf("attendance has no id: %v", record)
	}
	return int(id)
}

func TestCheckInConflictStatusCodes(t *testing.T) {
	app, _ := newAttendanceApp(t)
	coords := map[string]float64{"latitude": 15.7634, "longitude": -86.75342}

	status, body := doJSON(t, app, http.MethodPost, "/attendance/checkin", coords)
	if status != http.StatusCreated {
		t.Fatalf("first check-in status = %d, want 201 (%v)", status, body)
	}
	id := recordID(t, body)

	// Duplicate while pending: a 400 client error, not a separate status class
	status, body = doJSON(t, app, http.MethodPost, "/attendance/checkin", coords)
	if status != http.StatusBadRequest {
		t.Errorf("duplicate check-in status = %d, want 400 (%v)", status, body)
	}

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/attendance/checkout/%d", id), coords)
	if status != http.StatusOK {
		t.Fatalf("check-out status = %d, want 200 (%v)", status, body)
	}

	// Day completed: still 400
	status, body = doJSON(t, app, http.MethodPost, "/attendance/checkin", coords)
	if status != http.StatusBadRequest {
		t.Errorf("check-in after completion status = %d, want 400 (%v)", status, body)
	}

	// Double check-out: 400; unknown record: 404
	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/attendance/checkout/%d", id), coords)
	if status != http.StatusBadRequest {
		t.Errorf("double check-out status = %d, want 400 (%v)", status, body)
	}
	status, body = doJSON(t, app, http.MethodPut, "/attendance/checkout/9999", coords)
	if status != http.StatusNotFound {
		t.Errorf("unknown record check-out status = %d, want 404 (%v)", status, body)
	}
}

func TestCheckInGeofenceStatusCode(t *testing.T) {
	app, settingsService := newAttendanceApp(t)

	enforced := true
	err := settingsService.UpdateOfficeLocation(context.Background(), &services.OfficeLocationInput{
		Latitude:  15.7634,
		Longitude: -86.75342,
		Radius:    100,
		Enforced:  &enforced,
	})
	if err != nil {
		t.Fatalf("failed to enforce the geofence: %v", err)
	}

	far := map[string]float64{"latitude": 14.0, "longitude": -87.0}
	status, body := doJSON(t, app, http.MethodPost, "/attendance/checkin", far)
	if status != http.StatusBadRequest {
		t.Errorf("outside-geofence check-in status = %d, want 400 (%v)", status, body)
	}
}
