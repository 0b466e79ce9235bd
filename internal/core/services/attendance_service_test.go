package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/core/domain"
)

// newAttendanceFixture wires the attendance service against an in-memory
// store with the clock pinned to the given instant.
func newAttendanceFixture(t *testing.T, now time.Time) (*AttendanceService, *SettingsService) {
	t.Helper()

	db := newTestDB(t)
	settingsService := NewSettingsService(repositories.NewSettingRepository(db))
	service := NewAttendanceService(repositories.NewAttendanceRepository(db), settingsService)
	service.now = func() time.Time { return now }

	return service, settingsService
}

// workdayMorning is a Monday 09:00 inside the default window
var workdayMorning = time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)

func TestCheckInLifecycle(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	input := &CheckInInput{
		UserID:    1,
		UserName:  "Maria Lopez",
		Latitude:  15.7634,
		Longitude: -86.75342,
	}

	record, err := service.CheckIn(ctx, input)
	if err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if record.ID == 0 {
		t.Error("check-in should assign a record ID")
	}
	if record.Status != "on-time" {
		t.Errorf("status = %q, want on-time", record.Status)
	}
	if !record.IsPending() {
		t.Error("fresh check-in should be pending")
	}
	if !record.CheckInTime.Equal(workdayMorning) {
		t.Errorf("check-in time = %v, want server clock %v", record.CheckInTime, workdayMorning)
	}

	// Second check-in on the same day while still pending
	if _, err := service.CheckIn(ctx, input); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Errorf("duplicate check-in error = %v, want ErrAlreadyCheckedIn", err)
	}

	// Close the day at 18:30
	service.now = func() time.Time { return workdayMorning.Add(9*time.Hour + 30*time.Minute) }
	completed, err := service.CheckOut(ctx, record.ID, &CheckOutInput{Latitude: 15.7635, Longitude: -86.7535})
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if completed.IsPending() {
		t.Error("checked-out record should not be pending")
	}
	if completed.TotalHours == nil {
		t.Fatal("check-out should set total hours")
	}
	if math.Abs(*completed.TotalHours-9.5) > 1e-9 {
		t.Errorf("total hours = %v, want 9.5", *completed.TotalHours)
	}
	if completed.CheckOutLat == nil || *completed.CheckOutLat != 15.7635 {
		t.Error("check-out should store the submitted coordinates")
	}

	// The day is now complete: no second record, no second check-out
	if _, err := service.CheckIn(ctx, input); !errors.Is(err, domain.ErrDayAlreadyComplete) {
		t.Errorf("check-in after completion error = %v, want ErrDayAlreadyComplete", err)
	}
	if _, err := service.CheckOut(ctx, record.ID, &CheckOutInput{Latitude: 15.7635, Longitude: -86.7535}); !errors.Is(err, domain.ErrAlreadyCheckedOut) {
		t.Errorf("double check-out error = %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestCheckInOutsideWorkHours(t *testing.T) {
	ctx := context.Background()

	// Sunday 23:00 - past the extended cutoff and not a work day
	sundayNight := time.Date(2025, 6, 1, 23, 0, 0, 0, time.Local)
	service, _ := newAttendanceFixture(t, sundayNight)

	_, err := service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 15.7634, Longitude: -86.75342,
	})
	if !errors.Is(err, domain.ErrOutsideWorkHours) {
		t.Fatalf("error = %v, want ErrOutsideWorkHours", err)
	}
}

func TestCheckInGeofence(t *testing.T) {
	ctx := context.Background()
	service, settingsService := newAttendanceFixture(t, workdayMorning)

	enforced := true
	err := settingsService.UpdateOfficeLocation(ctx, &OfficeLocationInput{
		Latitude:  15.7634,
		Longitude: -86.75342,
		Radius:    100,
		Enforced:  &enforced,
	})
	if err != nil {
		t.Fatalf("failed to enforce geofence: %v", err)
	}

	// ~555m north of the office
	_, err = service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 15.7684, Longitude: -86.75342,
	})
	if !errors.Is(err, domain.ErrOutsideGeofence) {
		t.Fatalf("far check-in error = %v, want ErrOutsideGeofence", err)
	}

	// Inside the radius
	_, err = service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 15.7636, Longitude: -86.75342,
	})
	if err != nil {
		t.Fatalf("near check-in failed: %v", err)
	}
}

func TestCheckInGeofenceNotEnforcedByDefault(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	// Far from the office, but enforcement is off unless an admin enables it
	_, err := service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 14.0, Longitude: -87.0,
	})
	if err != nil {
		t.Fatalf("check-in without enforcement failed: %v", err)
	}
}

func TestCheckInInvalidInput(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	tests := []struct {
		name  string
		input *CheckInInput
	}{
		{"missing user", &CheckInInput{UserName: "x", Latitude: 10, Longitude: 10}},
		{"missing name", &CheckInInput{UserID: 1, Latitude: 10, Longitude: 10}},
		{"latitude out of range", &CheckInInput{UserID: 1, UserName: "x", Latitude: 91, Longitude: 10}},
		{"longitude out of range", &CheckInInput{UserID: 1, UserName: "x", Latitude: 10, Longitude: -181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CheckIn(ctx, tt.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCheckOutUnknownRecord(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	_, err := service.CheckOut(ctx, 9999, &CheckOutInput{Latitude: 15.7634, Longitude: -86.75342})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestLatestPending(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	record, err := service.LatestPending(ctx, 1)
	if err != nil {
		t.Fatalf("LatestPending failed: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil for a user with no open day, got %+v", record)
	}

	created, err := service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 15.7634, Longitude: -86.75342,
	})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	record, err = service.LatestPending(ctx, 1)
	if err != nil {
		t.Fatalf("LatestPending failed: %v", err)
	}
	if record == nil || record.ID != created.ID {
		t.Errorf("LatestPending = %+v, want record %d", record, created.ID)
	}
}

func TestHistoryOrderAndTotal(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	// Three days of check-ins, oldest first
	for i := 2; i >= 0; i-- {
		day := workdayMorning.AddDate(0, 0, -i)
		service.now = func() time.Time { return day }
		if _, err := service.CheckIn(ctx, &CheckInInput{
			UserID: 1, UserName: "Maria Lopez", Latitude: 15.7634, Longitude: -86.75342,
		}); err != nil {
			t.Fatalf("check-in for %v failed: %v", day, err)
		}
	}

	records, total, err := service.History(ctx, 1, 0, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(records) != 2 {
		t.Fatalf("page size = %d, want 2", len(records))
	}
	if !records[0].CheckInTime.After(records[1].CheckInTime) {
		t.Error("history should be newest first")
	}
}

func TestDateRange(t *testing.T) {
	ctx := context.Background()
	service, _ := newAttendanceFixture(t, workdayMorning)

	if _, err := service.CheckIn(ctx, &CheckInInput{
		UserID: 1, UserName: "Maria Lopez", Latitude: 15.7634, Longitude: -86.75342,
	}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	day := workdayMorning.Format("2006-01-02")

	records, err := service.DateRange(ctx, day, day, nil)
	if err != nil {
		t.Fatalf("same-day range failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("same-day range returned %d records, want 1", len(records))
	}

	otherUser := uint(2)
	records, err = service.DateRange(ctx, day, day, &otherUser)
	if err != nil {
		t.Fatalf("filtered range failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("filtered range returned %d records, want 0", len(records))
	}

	if _, err := service.DateRange(ctx, "02/06/2025", day, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad start date error = %v, want ErrInvalidInput", err)
	}
	if _, err := service.DateRange(ctx, day, "2025-05-01", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("inverted range error = %v, want ErrInvalidInput", err)
	}
}
