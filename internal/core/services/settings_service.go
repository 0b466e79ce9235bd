package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/core/domain"

	"gorm.io/gorm"
)

// Settings errors
var (
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
	ErrInvalidTolerance   = errors.New("tolerance must be a non-negative number of minutes")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidRadius      = fmt.Errorf("radius must be between %d and %d meters",
		domain.MinGeofenceRadius, domain.MaxGeofenceRadius)
)

// defaultOfficeAddress is returned alongside the configured coordinate
const defaultOfficeAddress = "Residencial Monte Real, La Ceiba"

// SettingsService reads and writes the key-value settings table with typed
// accessors. Reads always hit the store; request volume is far too low for a
// cache to pay for its invalidation.
type SettingsService struct {
	settingRepo repositories.SettingRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingRepo repositories.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// WorkScheduleInput represents a work schedule update
type WorkScheduleInput struct {
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
	ExtendedHours    *bool  `json:"extended_hours,omitempty"`
}

// OfficeLocationInput represents an office location update
type OfficeLocationInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	Enforced  *bool   `json:"enforced,omitempty"`
}

// GetWorkSchedule assembles the effective schedule from individual settings,
// falling back to defaults for any missing key.
func (s *SettingsService) GetWorkSchedule(ctx context.Context) (domain.WorkSchedule, error) {
	schedule := domain.DefaultWorkSchedule()

	start, err := s.getString(ctx, models.SettingWorkStartTime)
	if err != nil {
		return schedule, err
	}
	if start != "" {
		schedule.StartTime = start
	}

	end, err := s.getString(ctx, models.SettingWorkEndTime)
	if err != nil {
		return schedule, err
	}
	if end != "" {
		schedule.EndTime = end
	}

	tolerance, err := s.getInt(ctx, models.SettingLateTolerance, domain.DefaultToleranceMinutes)
	if err != nil {
		return schedule, err
	}
	schedule.ToleranceMinutes = tolerance

	extended, err := s.getBool(ctx, models.SettingExtendedHoursMode, true)
	if err != nil {
		return schedule, err
	}
	schedule.ExtendedHours = extended

	return schedule, nil
}

// UpdateWorkSchedule validates and stores the schedule keys individually.
// Each key is an independent upsert, same as the store it replaces.
func (s *SettingsService) UpdateWorkSchedule(ctx context.Context, input *WorkScheduleInput) error {
	if !validClock(input.StartTime) || !validClock(input.EndTime) {
		return ErrInvalidClockFormat
	}
	if input.ToleranceMinutes < 0 {
		return ErrInvalidTolerance
	}

	if err := s.settingRepo.Set(ctx, models.SettingWorkStartTime, input.StartTime); err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, models.SettingWorkEndTime, input.EndTime); err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, models.SettingLateTolerance, strconv.Itoa(input.ToleranceMinutes)); err != nil {
		return err
	}
	if input.ExtendedHours != nil {
		if err := s.settingRepo.Set(ctx, models.SettingExtendedHoursMode, strconv.FormatBool(*input.ExtendedHours)); err != nil {
			return err
		}
	}
	return nil
}

// GetOfficeLocation assembles the office geofence from individual settings.
func (s *SettingsService) GetOfficeLocation(ctx context.Context) (domain.OfficeLocation, error) {
	location := domain.DefaultOfficeLocation()
	location.Address = defaultOfficeAddress

	lat, err := s.getFloat(ctx, models.SettingOfficeLatitude, domain.DefaultOfficeLatitude)
	if err != nil {
		return location, err
	}
	location.Latitude = lat

	lng, err := s.getFloat(ctx, models.SettingOfficeLongitude, domain.DefaultOfficeLongitude)
	if err != nil {
		return location, err
	}
	location.Longitude = lng

	radius, err := s.getFloat(ctx, models.SettingGeofenceRadius, domain.DefaultGeofenceRadius)
	if err != nil {
		return location, err
	}
	location.Radius = radius

	enforced, err := s.getBool(ctx, models.SettingGeofenceEnforced, false)
	if err != nil {
		return location, err
	}
	location.Enforced = enforced

	return location, nil
}

// UpdateOfficeLocation validates and stores the office location keys.
func (s *SettingsService) UpdateOfficeLocation(ctx context.Context, input *OfficeLocationInput) error {
	if !domain.ValidCoordinate(input.Latitude, input.Longitude) {
		return ErrInvalidCoordinates
	}
	if input.Radius < domain.MinGeofenceRadius || input.Radius > domain.MaxGeofenceRadius {
		return ErrInvalidRadius
	}

	if err := s.settingRepo.Set(ctx, models.SettingOfficeLatitude, formatFloat(input.Latitude)); err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, models.SettingOfficeLongitude, formatFloat(input.Longitude)); err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, models.SettingGeofenceRadius, formatFloat(input.Radius)); err != nil {
		return err
	}
	if input.Enforced != nil {
		if err := s.settingRepo.Set(ctx, models.SettingGeofenceEnforced, strconv.FormatBool(*input.Enforced)); err != nil {
			return err
		}
	}
	return nil
}

// getString returns the stored value, or "" when the key is absent.
func (s *SettingsService) getString(ctx context.Context, key string) (string, error) {
	value, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// getInt returns the stored value parsed as int. Absent or unparsable values
// fall back to the default.
func (s *SettingsService) getInt(ctx context.Context, key string, fallback int) (int, error) {
	value, err := s.getString(ctx, key)
	if err != nil {
		return fallback, err
	}
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

func (s *SettingsService) getFloat(ctx context.Context, key string, fallback float64) (float64, error) {
	value, err := s.getString(ctx, key)
	if err != nil {
		return fallback, err
	}
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, nil
	}
	return f, nil
}

func (s *SettingsService) getBool(ctx context.Context, key string, fallback bool) (bool, error) {
	value, err := s.getString(ctx, key)
	if err != nil {
		return fallback, err
	}
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, nil
	}
	return b, nil
}

func validClock(clock string) bool {
	var hour, min int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &min); err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && min >= 0 && min <= 59
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
