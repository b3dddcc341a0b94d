package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/logger"
)

const interviewDateLayout = "2006-01-02"

// InterviewDTO represents the API-friendly interview payload.
type InterviewDTO struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	JobTitle      string    `json:"job_title,omitempty"`
	ApplicantName string    `json:"applicant_name,omitempty"`
	InterviewDate string    `json:"interview_date"`
	InterviewTime string    `json:"interview_time"`
	MeetingLink   string    `json:"meeting_link"`
	CreatedAt     time.Time `json:"created_at"`
}

// ScheduleInterviewInput carries the slot details for a new or updated
// schedule. Date uses the YYYY-MM-DD wire format.
type ScheduleInterviewInput struct {
	Date        string `json:"interview_date" validate:"required"`
	Time        string `json:"interview_time" validate:"required"`
	MeetingLink string `json:"meeting_link" validate:"omitempty,url"`
}

// InterviewService manages interview schedules. Each application carries at
// most one schedule, and only approved applications are eligible.
type InterviewService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewInterviewService constructs an InterviewService.
func NewInterviewService(db *gorm.DB, notifier Notifier) (*InterviewService, error) {
	if db == nil {
		return nil, errors.New("interview service: db is required")
	}
	if notifier == nil {
		return nil, errors.New("interview service: notifier is required")
	}
	return &InterviewService{
		db:       db,
		notifier: notifier,
		log:      logger.WithModule("interviews"),
		now:      time.Now,
	}, nil
}

// Schedule creates the schedule for an approved application owned by the
// acting employer. A second schedule for the same application is rejected.
func (s *InterviewService) Schedule(ctx context.Context, actor Actor, applicationID string, input ScheduleInterviewInput) (*InterviewDTO, error) {
	ctx = ensureContext(ctx)

	date, err := parseInterviewDate(input.Date)
	if err != nil {
		return nil, err
	}

	application, job, err := s.loadOwnedApplication(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != models.ApplicationApproved {
		return nil, apperrors.NewBadRequest("interviews can only be scheduled for approved applications")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.InterviewSchedule{}).
		Where("application_id = ?", applicationID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("interview service: check existing schedule: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.NewConflict("this application already has an interview scheduled")
	}

	schedule := models.InterviewSchedule{
		ApplicationID: applicationID,
		InterviewDate: date,
		InterviewTime: strings.TrimSpace(input.Time),
		MeetingLink:   strings.TrimSpace(input.MeetingLink),
	}
	if err := s.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return nil, fmt.Errorf("interview service: create schedule: %w", err)
	}

	advise(s.log, "schedule announced", s.notifier.NotifyUser(ctx, application.ApplicantID, models.RoleUser,
		"Interview Scheduled",
		fmt.Sprintf("Your interview for %q is scheduled on %s at %s.",
			job.Title, schedule.InterviewDate.Format(interviewDateLayout), schedule.InterviewTime)))

	dto := mapInterview(schedule, job.Title, application.ApplicantName)
	return &dto, nil
}

// Reschedule updates the slot details on an existing schedule.
func (s *InterviewService) Reschedule(ctx context.Context, actor Actor, scheduleID string, input ScheduleInterviewInput) (*InterviewDTO, error) {
	ctx = ensureContext(ctx)

	date, err := parseInterviewDate(input.Date)
	if err != nil {
		return nil, err
	}

	schedule, application, job, err := s.loadOwnedSchedule(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"interview_date": date,
		"interview_time": strings.TrimSpace(input.Time),
		"meeting_link":   strings.TrimSpace(input.MeetingLink),
	}
	if err := s.db.WithContext(ctx).Model(schedule).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("interview service: update schedule: %w", err)
	}
	schedule.InterviewDate = date
	schedule.InterviewTime = strings.TrimSpace(input.Time)
	schedule.MeetingLink = strings.TrimSpace(input.MeetingLink)

	advise(s.log, "reschedule announced", s.notifier.NotifyUser(ctx, application.ApplicantID, models.RoleUser,
		"Interview Schedule Updated",
		fmt.Sprintf("Your interview for %q has been updated to %s at %s.",
			job.Title, schedule.InterviewDate.Format(interviewDateLayout), schedule.InterviewTime)))

	dto := mapInterview(*schedule, job.Title, application.ApplicantName)
	return &dto, nil
}

// Cancel removes a schedule and tells the applicant.
func (s *InterviewService) Cancel(ctx context.Context, actor Actor, scheduleID string) error {
	ctx = ensureContext(ctx)

	schedule, application, job, err := s.loadOwnedSchedule(ctx, actor, scheduleID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(schedule).Error; err != nil {
		return fmt.Errorf("interview service: delete schedule: %w", err)
	}

	advise(s.log, "cancellation announced", s.notifier.NotifyUser(ctx, application.ApplicantID, models.RoleUser,
		"Interview Cancelled",
		fmt.Sprintf("Your interview for %q has been cancelled.", job.Title)))

	return nil
}

// ListUpcomingForApplicant returns the seeker's schedules dated today or
// later, soonest first.
func (s *InterviewService) ListUpcomingForApplicant(ctx context.Context, actor Actor) ([]InterviewDTO, error) {
	ctx = ensureContext(ctx)

	var rows []interviewRow
	if err := s.upcoming(ctx).
		Where("applications.applicant_id = ?", actor.ID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("interview service: list applicant schedules: %w", err)
	}
	return mapInterviewRows(rows), nil
}

// ListUpcomingForEmployer returns upcoming schedules across all of the
// employer's postings.
func (s *InterviewService) ListUpcomingForEmployer(ctx context.Context, actor Actor) ([]InterviewDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleEmployer {
		return nil, apperrors.ErrForbidden
	}

	var rows []interviewRow
	if err := s.upcoming(ctx).
		Where("job_postings.employer_id = ?", actor.ID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("interview service: list employer schedules: %w", err)
	}
	return mapInterviewRows(rows), nil
}

// upcoming builds the joined base query filtered to today-or-later dates.
func (s *InterviewService) upcoming(ctx context.Context) *gorm.DB {
	today := s.now().Format(interviewDateLayout)
	return s.db.WithContext(ctx).
		Model(&models.InterviewSchedule{}).
		Select("interview_schedules.*, job_postings.title AS job_title, applications.applicant_name AS applicant_name").
		Joins("JOIN applications ON applications.id = interview_schedules.application_id").
		Joins("JOIN job_postings ON job_postings.id = applications.job_id").
		Where("interview_schedules.interview_date >= ?", today).
		Order("interview_schedules.interview_date ASC, interview_schedules.interview_time ASC")
}

func (s *InterviewService) loadOwnedApplication(ctx context.Context, actor Actor, applicationID string) (*models.Application, *models.JobPosting, error) {
	var application models.Application
	if err := s.db.WithContext(ctx).Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("interview service: load application: %w", err)
	}

	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", application.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("interview service: load job: %w", err)
	}

	if actor.Role != models.RoleEmployer || job.EmployerID != actor.ID {
		return nil, nil, apperrors.ErrForbidden
	}
	return &application, &job, nil
}

func (s *InterviewService) loadOwnedSchedule(ctx context.Context, actor Actor, scheduleID string) (*models.InterviewSchedule, *models.Application, *models.JobPosting, error) {
	var schedule models.InterviewSchedule
	if err := s.db.WithContext(ctx).Where("id = ?", scheduleID).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("interview service: load schedule: %w", err)
	}

	application, job, err := s.loadOwnedApplication(ctx, actor, schedule.ApplicationID)
	if err != nil {
		return nil, nil, nil, err
	}
	return &schedule, application, job, nil
}

func parseInterviewDate(value string) (time.Time, error) {
	date, err := time.Parse(interviewDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewBadRequest("interview date must use the YYYY-MM-DD format")
	}
	return date, nil
}

func mapInterview(row models.InterviewSchedule, jobTitle, applicantName string) InterviewDTO {
	return InterviewDTO{
		ID:            row.ID,
		ApplicationID: row.ApplicationID,
		JobTitle:      jobTitle,
		ApplicantName: applicantName,
		InterviewDate: row.InterviewDate.Format(interviewDateLayout),
		InterviewTime: row.InterviewTime,
		MeetingLink:   row.MeetingLink,
		CreatedAt:     row.CreatedAt,
	}
}

type interviewRow struct {
	models.InterviewSchedule
	JobTitle      string
	ApplicantName string
}

func mapInterviewRows(rows []interviewRow) []InterviewDTO {
	items := make([]InterviewDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, mapInterview(r.InterviewSchedule, r.JobTitle, r.ApplicantName))
	}
	return items
}
