package database

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
)

const (
	defaultAdminEmail    = "admin@nexttalent.io"
	defaultAdminPassword = "change-me-now"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.UserProfile{},
		&models.EmployerProfile{},
		&models.JobPosting{},
		&models.Application{},
		&models.InterviewSchedule{},
		&models.Notification{},
		&models.JobRejectionFeedback{},
		&models.RejectedSuggestion{},
		&models.SavedJob{},
		&models.Review{},
		&models.NewsPost{},
	)
}

// SeedData ensures the bootstrap admin account exists. The default password
// is intended to be rotated immediately after first login.
func SeedData(db *gorm.DB) error {
	return SeedAdmin(db, defaultAdminEmail, defaultAdminPassword)
}

// SeedAdmin creates an admin account with the supplied credentials unless one
// with the same email already exists.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("seed admin: email is required")
	}

	var count int64
	if err := db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: lookup: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	admin := models.Account{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: create account: %w", err)
	}

	return nil
}
