package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexttalent/nexttalent/internal/database/testutil"
	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
)

func TestApplyCopiesProfileAndNotifies(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")
	admin := seedAdmin(t, db, "admin@example.com")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	application, err := svc.Apply(context.Background(), seekerActor(seeker), job.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationPending, application.Status)
	require.Equal(t, "Alice Tan", application.ApplicantName)
	require.Equal(t, "alice@example.com", application.ApplicantEmail)
	require.NotEmpty(t, application.ResumeLink)

	employerInbox := inboxMessages(t, db, employer.ID, models.RoleEmployer)
	require.Len(t, employerInbox, 1)
	require.Equal(t, "New Job Application", employerInbox[0].Title)
	require.Equal(t, "Alice Tan applied to your job: Backend Engineer.", employerInbox[0].Message)

	adminInbox := inboxMessages(t, db, admin.ID, models.RoleAdmin)
	require.Len(t, adminInbox, 1)
	require.Equal(t, "Alice Tan applied to the job: Backend Engineer.", adminInbox[0].Message)
}

func TestApplyRejectsDuplicates(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	_, err = svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.Error(t, err)
}

func TestApplyRejectsHiddenJob(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	jobs, err := NewJobService(db, notifier)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	ctx := context.Background()
	pending, err := jobs.Create(ctx, employerActor(employer), CreateJobInput{Title: "Pending Role"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, seekerActor(seeker), pending.ID)
	require.Error(t, err)
}

func TestApplyRejectsPastDeadline(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.JobPosting{}).
		Where("id = ?", job.ID).
		Update("application_deadline", yesterday).Error)

	_, err = svc.Apply(context.Background(), seekerActor(seeker), job.ID)
	require.Error(t, err)
}

func TestSetStatusFollowsTransitionTable(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	approved, err := svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationApproved, approved.Status)

	// Approved may still be rejected, but never return to Pending.
	_, err = svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationPending)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	rejected, err := svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationRejected)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationRejected, rejected.Status)

	// Rejected is terminal.
	_, err = svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSetStatusSendsExactlyOneNotification(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	messages := inboxMessages(t, db, seeker.ID, models.RoleUser)
	require.Len(t, messages, 1)
	require.Equal(t, "Application Status Updated", messages[0].Title)
	require.Equal(t, `Your application for "Backend Engineer" was Approved.`, messages[0].Message)

	// A refused transition adds nothing.
	_, err = svc.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationPending)
	require.Error(t, err)
	require.Len(t, inboxMessages(t, db, seeker.ID, models.RoleUser), 1)
}

func TestSetStatusOwnerGuard(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	rival := seedEmployer(t, db, "rival@example.com", "Rival")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, employerActor(rival), application.ID, models.ApplicationApproved)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRejectWithSuggestionStoresRecord(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, employerActor(employer), application.ID, &SuggestionInput{
		Answers: map[string]string{
			"Technical Knowledge": "Average",
			"Resume Quality":      "Good",
		},
		Comment: "Brush up on system design.",
	})
	require.NoError(t, err)

	suggestions, err := svc.ListSuggestions(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, "Backend Engineer", suggestions[0].JobTitle)
	require.Equal(t, "Acme", suggestions[0].CompanyName)
	require.Equal(t, "Average", suggestions[0].QuestionsAnswers["Technical Knowledge"])
}

func TestRejectWithInvalidSuggestionStillRejects(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	// The suggestion is advisory: a bad category never undoes the rejection.
	dto, err := svc.Reject(ctx, employerActor(employer), application.ID, &SuggestionInput{
		Answers: map[string]string{"Astrology": "Excellent"},
	})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationRejected, dto.Status)

	suggestions, err := svc.ListSuggestions(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Empty(t, suggestions)
}

func TestListForApplicantIncludesJobTitle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewApplicationService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	_, err = svc.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	mine, err := svc.ListForApplicant(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Backend Engineer", mine[0].JobTitle)

	forEmployer, err := svc.ListForEmployer(ctx, employerActor(employer))
	require.NoError(t, err)
	require.Len(t, forEmployer, 1)
	require.Equal(t, "Alice Tan", forEmployer[0].ApplicantName)

	forJob, err := svc.ListForJob(ctx, employerActor(employer), job.ID)
	require.NoError(t, err)
	require.Len(t, forJob, 1)
}
