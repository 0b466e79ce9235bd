package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService aggregates head-count figures for the admin dashboard.
// Raw table queries instead of repositories: these are read-only aggregates
// with no business rules attached.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardSummary represents today's attendance at a glance
type DashboardSummary struct {
	TotalEmployees  int64   `json:"total_employees"`
	ActiveEmployees int64   `json:"active_employees"`
	CheckedInToday  int64   `json:"checked_in_today"`
	PendingToday    int64   `json:"pending_today"`
	CompletedToday  int64   `json:"completed_today"`
	HoursToday      float64 `json:"hours_today"`
}

// GetSummary returns today's attendance aggregates
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	s.db.WithContext(ctx).Table("users").
		Where("deleted_at IS NULL").
		Count(&summary.TotalEmployees)

	s.db.WithContext(ctx).Table("users").
		Where("is_active = ? AND deleted_at IS NULL", true).
		Count(&summary.ActiveEmployees)

	s.db.WithContext(ctx).Table("attendance").
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Count(&summary.CheckedInToday)

	s.db.WithContext(ctx).Table("attendance").
		Where("check_in_time >= ? AND check_in_time < ? AND check_out_time IS NULL", dayStart, dayEnd).
		Count(&summary.PendingToday)

	s.db.WithContext(ctx).Table("attendance").
		Where("check_in_time >= ? AND check_in_time < ? AND check_out_time IS NOT NULL", dayStart, dayEnd).
		Count(&summary.CompletedToday)

	err := s.db.WithContext(ctx).Table("attendance").
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(total_hours), 0)").
		Scan(&summary.HoursToday).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
