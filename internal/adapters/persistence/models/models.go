package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles stored on users.role
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// StatusOnTime is the status written on every successful check-in.
const StatusOnTime = "on-time"

// User represents the users table
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Role        string         `gorm:"size:20;default:'employee'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Department  string         `gorm:"size:100" json:"department"`
	PhoneNumber string         `gorm:"size:30" json:"phone_number"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	Department  string    `json:"department,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Department:  u.Department,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

// Attendance represents the attendance table. One row per user per calendar
// day: created at check-in, completed exactly once at check-out, never
// deleted by the service.
type Attendance struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	UserName     string     `gorm:"size:100;not null" json:"user_name"` // snapshot at check-in
	CheckInTime  time.Time  `gorm:"index;not null" json:"check_in_time"`
	CheckInLat   float64    `gorm:"type:decimal(10,7)" json:"check_in_lat"`
	CheckInLng   float64    `gorm:"type:decimal(10,7)" json:"check_in_lng"`
	CheckOutTime *time.Time `json:"check_out_time"`
	CheckOutLat  *float64   `gorm:"type:decimal(10,7)" json:"check_out_lat"`
	CheckOutLng  *float64   `gorm:"type:decimal(10,7)" json:"check_out_lng"`
	Status       string     `gorm:"size:20;default:'on-time'" json:"status"`
	TotalHours   *float64   `gorm:"type:decimal(6,2)" json:"total_hours"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// IsPending reports whether the record still has no check-out.
func (a *Attendance) IsPending() bool {
	return a.CheckOutTime == nil
}

// Setting represents the settings table: one string value per unique key.
type Setting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SettingKey   string    `gorm:"uniqueIndex;size:50;not null" json:"setting_key"`
	SettingValue string    `gorm:"size:255;not null" json:"setting_value"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	SettingWorkStartTime     = "work_start_time"
	SettingWorkEndTime       = "work_end_time"
	SettingLateTolerance     = "late_tolerance"
	SettingOfficeLatitude    = "office_latitude"
	SettingOfficeLongitude   = "office_longitude"
	SettingGeofenceRadius    = "geofence_radius"
	SettingExtendedHoursMode = "extended_hours_mode"
	SettingGeofenceEnforced  = "geofence_enforced"
)

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Attendance{},
		&Setting{},
		&RefreshToken{},
	)
}
