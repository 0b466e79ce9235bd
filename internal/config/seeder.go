package config

import (
	"log"
	"strconv"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/core/domain"
	"geoattend/internal/pkg/password"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDefaultSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account
// This is for development/testing only
// In production, create admins through the user management API
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@geoattend.app",
		Password: hashedPassword,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded admin user: %s", admin.Email)
	return nil
}

// seedDefaultSettings writes the default schedule and office keys so the
// settings table mirrors what the typed readers would fall back to anyway.
// Existing values are left untouched.
func (s *Seeder) seedDefaultSettings() error {
	defaults := map[string]string{
		models.SettingWorkStartTime:     domain.DefaultWorkStartTime,
		models.SettingWorkEndTime:       domain.DefaultWorkEndTime,
		models.SettingLateTolerance:     strconv.Itoa(domain.DefaultToleranceMinutes),
		models.SettingOfficeLatitude:    strconv.FormatFloat(domain.DefaultOfficeLatitude, 'f', -1, 64),
		models.SettingOfficeLongitude:   strconv.FormatFloat(domain.DefaultOfficeLongitude, 'f', -1, 64),
		models.SettingGeofenceRadius:    strconv.Itoa(domain.DefaultGeofenceRadius),
		models.SettingExtendedHoursMode: "true",
		models.SettingGeofenceEnforced:  "false",
	}

	for key, value := range defaults {
		setting := models.Setting{SettingKey: key, SettingValue: value}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoNothing: true,
		}).Create(&setting).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedDefaults runs the seeders (called from main)
func SeedDefaults(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
