package repositories

import (
	"context"
	"errors"
	"time"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// dayBounds returns the half-open [start, next) range of t's calendar day.
// Range comparison instead of DATE() keeps the check_in_time index usable.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// lockForUpdate adds row locking on engines that support it. SQLite rejects
// FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CheckIn inserts a new attendance record after verifying the user has no
// record for the same calendar day. The existing rows are locked FOR UPDATE
// inside the transaction, so two concurrent check-ins for one user serialize
// on the storage layer instead of racing between read and insert.
func (r *attendanceRepository) CheckIn(ctx context.Context, record *models.Attendance) error {
	dayStart, dayEnd := dayBounds(record.CheckInTime)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Attendance
		err := lockForUpdate(tx).
			Where("user_id = ? AND check_in_time >= ? AND check_in_time < ?",
				record.UserID, dayStart, dayEnd).
			Find(&existing).Error
		if err != nil {
			return err
		}

		for _, att := range existing {
			if att.IsPending() {
				return domain.ErrAlreadyCheckedIn
			}
		}
		if len(existing) > 0 {
			return domain.ErrDayAlreadyComplete
		}

		return tx.Create(record).Error
	})
}

// ListForDay lists a user's records for one calendar day
func (r *attendanceRepository) ListForDay(ctx context.Context, userID uint, day time.Time) ([]*models.Attendance, error) {
	dayStart, dayEnd := dayBounds(day)

	var records []*models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_in_time >= ? AND check_in_time < ?", userID, dayStart, dayEnd).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID gets an attendance record by ID
func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Complete sets the check-out fields on a pending record. The row is locked
// for the duration of the transaction so a record can only complete once.
// Total hours are elapsed whole minutes divided by 60, fraction retained.
func (r *attendanceRepository) Complete(ctx context.Context, id uint, checkOut time.Time, lat, lng float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Attendance
		err := lockForUpdate(tx).
			Where("id = ?", id).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecordNotFound
			}
			return err
		}

		if !record.IsPending() {
			return domain.ErrAlreadyCheckedOut
		}

		minutes := checkOut.Sub(record.CheckInTime).Minutes()
		totalHours := float64(int(minutes)) / 60.0

		return tx.Model(&record).Updates(map[string]interface{}{
			"check_out_time": checkOut,
			"check_out_lat":  lat,
			"check_out_lng":  lng,
			"total_hours":    totalHours,
		}).Error
	})
}

// ListByUser lists a user's attendance history, newest check-in first
func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	var records []*models.Attendance
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Attendance{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// LatestPending returns the user's most recent record without a check-out,
// or nil when there is none.
func (r *attendanceRepository) LatestPending(ctx context.Context, userID uint) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_out_time IS NULL", userID).
		Order("check_in_time DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByDateRange lists records whose check-in day falls inside [from, to],
// inclusive by calendar day, newest check-in first.
func (r *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time, userID *uint) ([]*models.Attendance, error) {
	return r.listRange(r.db.WithContext(ctx), from, to, userID)
}

// ListByDateRangeWithUsers is ListByDateRange with the owning user preloaded,
// used by the report projection.
func (r *attendanceRepository) ListByDateRangeWithUsers(ctx context.Context, from, to time.Time, userID *uint) ([]*models.Attendance, error) {
	return r.listRange(r.db.WithContext(ctx).Preload("User"), from, to, userID)
}

func (r *attendanceRepository) listRange(tx *gorm.DB, from, to time.Time, userID *uint) ([]*models.Attendance, error) {
	rangeStart, _ := dayBounds(from)
	_, rangeEnd := dayBounds(to)

	query := tx.Where("check_in_time >= ? AND check_in_time < ?", rangeStart, rangeEnd)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var records []*models.Attendance
	if err := query.Order("check_in_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
