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

func TestScheduleRequiresApprovedApplication(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	applications, err := NewApplicationService(db, notifier)
	require.NoError(t, err)
	svc, err := NewInterviewService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := applications.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date: futureDate(3),
		Time: "14:00",
	})
	require.Error(t, err)

	_, err = applications.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	dto, err := svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date:        futureDate(3),
		Time:        "14:00",
		MeetingLink: "https://meet.example.com/abc",
	})
	require.NoError(t, err)
	require.Equal(t, "14:00", dto.InterviewTime)

	messages := inboxMessages(t, db, seeker.ID, models.RoleUser)
	require.Len(t, messages, 2) // status update + interview scheduled
	require.Equal(t, "Interview Scheduled", messages[1].Title)
	require.Equal(t,
		`Your interview for "Backend Engineer" is scheduled on `+futureDate(3)+` at 14:00.`,
		messages[1].Message)
}

func TestScheduleRejectsSecondSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	applications, err := NewApplicationService(db, notifier)
	require.NoError(t, err)
	svc, err := NewInterviewService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := applications.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)
	_, err = applications.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date: futureDate(3), Time: "14:00",
	})
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date: futureDate(4), Time: "15:00",
	})
	require.Error(t, err)
}

func TestRescheduleAndCancelNotify(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	applications, err := NewApplicationService(db, notifier)
	require.NoError(t, err)
	svc, err := NewInterviewService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := applications.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)
	_, err = applications.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	schedule, err := svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date: futureDate(3), Time: "14:00",
	})
	require.NoError(t, err)

	updated, err := svc.Reschedule(ctx, employerActor(employer), schedule.ID, ScheduleInterviewInput{
		Date: futureDate(5), Time: "10:30",
	})
	require.NoError(t, err)
	require.Equal(t, futureDate(5), updated.InterviewDate)

	require.NoError(t, svc.Cancel(ctx, employerActor(employer), schedule.ID))

	messages := inboxMessages(t, db, seeker.ID, models.RoleUser)
	require.Len(t, messages, 4) // status, scheduled, updated, cancelled
	require.Equal(t, "Interview Schedule Updated", messages[2].Title)
	require.Equal(t,
		`Your interview for "Backend Engineer" has been updated to `+futureDate(5)+` at 10:30.`,
		messages[2].Message)
	require.Equal(t, "Interview Cancelled", messages[3].Title)
	require.Equal(t, `Your interview for "Backend Engineer" has been cancelled.`, messages[3].Message)

	var count int64
	require.NoError(t, db.Model(&models.InterviewSchedule{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpcomingFiltersPastDates(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	applications, err := NewApplicationService(db, notifier)
	require.NoError(t, err)
	svc, err := NewInterviewService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := applications.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)
	_, err = applications.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, employerActor(employer), application.ID, ScheduleInterviewInput{
		Date: time.Now().Format("2006-01-02"), Time: "09:00",
	})
	require.NoError(t, err)

	// Today counts as upcoming.
	mine, err := svc.ListUpcomingForApplicant(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Backend Engineer", mine[0].JobTitle)

	forEmployer, err := svc.ListUpcomingForEmployer(ctx, employerActor(employer))
	require.NoError(t, err)
	require.Len(t, forEmployer, 1)
	require.Equal(t, "Alice Tan", forEmployer[0].ApplicantName)

	// Move the clock past the slot and it disappears.
	svc.now = func() time.Time { return time.Now().AddDate(0, 0, 2) }
	mine, err = svc.ListUpcomingForApplicant(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestScheduleOwnerGuard(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	rival := seedEmployer(t, db, "rival@example.com", "Rival")
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	applications, err := NewApplicationService(db, notifier)
	require.NoError(t, err)
	svc, err := NewInterviewService(db, notifier)
	require.NoError(t, err)

	job := seedApprovedJob(t, db, notifier, employer, "Backend Engineer")

	ctx := context.Background()
	application, err := applications.Apply(ctx, seekerActor(seeker), job.ID)
	require.NoError(t, err)
	_, err = applications.SetStatus(ctx, employerActor(employer), application.ID, models.ApplicationApproved)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, employerActor(rival), application.ID, ScheduleInterviewInput{
		Date: futureDate(3), Time: "14:00",
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
