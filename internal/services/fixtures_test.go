package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
)

func seedAdmin(t *testing.T, db *gorm.DB, email string) models.Account {
	t.Helper()

	account := models.Account{
		Email:    email,
		Password: "hashed",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func seedSeeker(t *testing.T, db *gorm.DB, email, fullName string) models.Account {
	t.Helper()

	account := models.Account{
		Email:    email,
		Password: "hashed",
		Role:     models.RoleUser,
		IsActive: true,
	}
	require.NoError(t, db.Create(&account).Error)

	profile := models.UserProfile{
		AccountID:  account.ID,
		FullName:   fullName,
		Email:      email,
		Phone:      "555-0100",
		ResumeLink: "https://cv.example.com/" + fullName,
	}
	require.NoError(t, db.Create(&profile).Error)
	return account
}

func seedEmployer(t *testing.T, db *gorm.DB, email, companyName string) models.Account {
	t.Helper()

	account := models.Account{
		Email:    email,
		Password: "hashed",
		Role:     models.RoleEmployer,
		IsActive: true,
	}
	require.NoError(t, db.Create(&account).Error)

	profile := models.EmployerProfile{
		AccountID:   account.ID,
		CompanyName: companyName,
		Email:       email,
	}
	require.NoError(t, db.Create(&profile).Error)
	return account
}

func seekerActor(account models.Account) Actor {
	return Actor{ID: account.ID, Role: models.RoleUser}
}

func employerActor(account models.Account) Actor {
	return Actor{ID: account.ID, Role: models.RoleEmployer}
}

func adminActor(account models.Account) Actor {
	return Actor{ID: account.ID, Role: models.RoleAdmin}
}

func seedApprovedJob(t *testing.T, db *gorm.DB, notifier Notifier, employer models.Account, title string) JobDTO {
	t.Helper()

	jobs, err := NewJobService(db, notifier)
	require.NoError(t, err)

	job, err := jobs.Create(context.Background(), employerActor(employer), CreateJobInput{Title: title})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.JobPosting{}).
		Where("id = ?", job.ID).
		Update("moderation_status", models.ModerationApproved).Error)
	job.ModerationStatus = models.ModerationApproved
	return *job
}

func inboxMessages(t *testing.T, db *gorm.DB, recipientID string, role models.Role) []models.Notification {
	t.Helper()

	var rows []models.Notification
	require.NoError(t, db.
		Where("recipient_id = ? AND role = ?", recipientID, role).
		Order("created_at ASC").
		Find(&rows).Error)
	return rows
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
