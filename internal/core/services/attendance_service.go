package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/core/domain"
)

// AttendanceService handles the check-in/check-out lifecycle
type AttendanceService struct {
	attendanceRepo  repositories.AttendanceRepository
	settingsService *SettingsService

	// now is the clock used for server-side timestamps; injectable for tests
	now func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	settingsService *SettingsService,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo:  attendanceRepo,
		settingsService: settingsService,
		now:             time.Now,
	}
}

// CheckInInput represents check-in input
type CheckInInput struct {
	UserID    uint    `json:"user_id"`
	UserName  string  `json:"user_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckOutInput represents check-out input
type CheckOutInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckIn registers the start of a work day. The timestamp is always the
// server clock, never client-supplied. Checks run in contract order: duplicate
// day state, then schedule policy, then geofence; the final insert re-checks
// the day state under a row lock so concurrent requests cannot both pass.
func (s *AttendanceService) CheckIn(ctx context.Context, input *CheckInInput) (*models.Attendance, error) {
	if input.UserID == 0 || input.UserName == "" {
		return nil, fmt.Errorf("%w: user_id and user_name are required", domain.ErrInvalidInput)
	}
	if !domain.ValidCoordinate(input.Latitude, input.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}

	now := s.now()

	// Early duplicate check so a user who already has a record today gets the
	// conflict message, not a policy rejection.
	existing, err := s.attendanceRepo.ListForDay(ctx, input.UserID, now)
	if err != nil {
		return nil, err
	}
	for _, att := range existing {
		if att.IsPending() {
			return nil, domain.ErrAlreadyCheckedIn
		}
	}
	if len(existing) > 0 {
		return nil, domain.ErrDayAlreadyComplete
	}

	schedule, err := s.settingsService.GetWorkSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if !schedule.Allows(now) {
		return nil, fmt.Errorf("%w (permitted window %s)", domain.ErrOutsideWorkHours, schedule.Window())
	}

	office, err := s.settingsService.GetOfficeLocation(ctx)
	if err != nil {
		return nil, err
	}
	if office.Enforced && !office.Contains(input.Latitude, input.Longitude) {
		distance := domain.DistanceMeters(office.Latitude, office.Longitude, input.Latitude, input.Longitude)
		return nil, fmt.Errorf("%w (%.0fm from office, radius %.0fm)",
			domain.ErrOutsideGeofence, distance, office.Radius)
	}

	record := &models.Attendance{
		UserID:      input.UserID,
		UserName:    input.UserName,
		CheckInTime: now,
		CheckInLat:  input.Latitude,
		CheckInLng:  input.Longitude,
		Status:      models.StatusOnTime,
	}

	if err := s.attendanceRepo.CheckIn(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("✅ Check-in recorded: user=%d record=%d", input.UserID, record.ID)
	return record, nil
}

// CheckOut completes a pending record with the server clock and the submitted
// coordinates. No schedule or geofence evaluation here: once checked in, an
// employee can always close the day.
func (s *AttendanceService) CheckOut(ctx context.Context, recordID uint, input *CheckOutInput) (*models.Attendance, error) {
	if !domain.ValidCoordinate(input.Latitude, input.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}

	if err := s.attendanceRepo.Complete(ctx, recordID, s.now(), input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Check-out recorded: record=%d", recordID)
	return record, nil
}

// History returns a user's attendance, newest check-in first
func (s *AttendanceService) History(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	return s.attendanceRepo.ListByUser(ctx, userID, offset, limit)
}

// LatestPending returns the user's open record, or nil when none exists
func (s *AttendanceService) LatestPending(ctx context.Context, userID uint) (*models.Attendance, error) {
	return s.attendanceRepo.LatestPending(ctx, userID)
}

// Today lists every record checked in on the current calendar day
func (s *AttendanceService) Today(ctx context.Context) ([]*models.Attendance, error) {
	now := s.now()
	return s.attendanceRepo.ListByDateRange(ctx, now, now, nil)
}

// DateRange lists records between two YYYY-MM-DD dates, inclusive by the
// check-in calendar day, optionally filtered to one user.
func (s *AttendanceService) DateRange(ctx context.Context, startDate, endDate string, userID *uint) ([]*models.Attendance, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByDateRange(ctx, from, to, userID)
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	to, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}
