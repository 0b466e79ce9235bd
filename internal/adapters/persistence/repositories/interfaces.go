package repositories

import (
	"context"
	"time"

	"geoattend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AttendanceRepository defines attendance repository interface.
// CheckIn and Complete enforce the one-record-per-day lifecycle inside a
// transaction so concurrent requests cannot slip between check and write.
type AttendanceRepository interface {
	CheckIn(ctx context.Context, record *models.Attendance) error
	GetByID(ctx context.Context, id uint) (*models.Attendance, error)
	ListForDay(ctx context.Context, userID uint, day time.Time) ([]*models.Attendance, error)
	Complete(ctx context.Context, id uint, checkOut time.Time, lat, lng float64) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error)
	LatestPending(ctx context.Context, userID uint) (*models.Attendance, error)
	ListByDateRange(ctx context.Context, from, to time.Time, userID *uint) ([]*models.Attendance, error)
	ListByDateRangeWithUsers(ctx context.Context, from, to time.Time, userID *uint) ([]*models.Attendance, error)
}

// SettingRepository defines the key-value settings store interface
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
