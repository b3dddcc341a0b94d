package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/logger"
	"github.com/nexttalent/nexttalent/pkg/metrics"
)

// JobDTO represents the API-friendly job posting payload.
type JobDTO struct {
	ID                  string                   `json:"id"`
	EmployerID          string                   `json:"employer_id"`
	Title               string                   `json:"title"`
	Location            string                   `json:"location"`
	Salary              string                   `json:"salary"`
	Description         string                   `json:"description"`
	RequiredSkills      []string                 `json:"required_skills"`
	ApplicationDeadline *time.Time               `json:"application_deadline,omitempty"`
	ModerationStatus    models.ModerationStatus  `json:"moderation_status"`
	OperationalStatus   models.OperationalStatus `json:"operational_status"`
	CreatedAt           time.Time                `json:"created_at"`
}

// CreateJobInput defines the attributes an employer submits for a new posting.
type CreateJobInput struct {
	Title               string
	Location            string
	Salary              string
	Description         string
	RequiredSkills      []string
	ApplicationDeadline *time.Time
}

// SearchJobsInput filters the seeker-facing job search.
type SearchJobsInput struct {
	Keyword  string
	Location string
}

// RejectJobInput carries the admin's rejection feedback. At least one reason
// from the fixed checklist is required.
type RejectJobInput struct {
	Reasons []string
	Comment string
}

// JobService manages job postings: employer submission, admin moderation,
// the open/closed operational axis, bookmarks, and seeker-facing search.
type JobService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(db *gorm.DB, notifier Notifier) (*JobService, error) {
	if db == nil {
		return nil, errors.New("job service: db is required")
	}
	if notifier == nil {
		return nil, errors.New("job service: notifier is required")
	}
	return &JobService{db: db, notifier: notifier, log: logger.WithModule("jobs")}, nil
}

// Create registers a new posting for the employer. Moderation status is
// always forced to Pending regardless of input, and the admin inbox is told
// to review it.
func (s *JobService) Create(ctx context.Context, actor Actor, input CreateJobInput) (*JobDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleEmployer {
		return nil, apperrors.ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("job title is required")
	}

	skills := input.RequiredSkills
	if len(skills) == 0 {
		skills = []string{models.NoSkillsSentinel}
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("job service: encode skills: %w", err)
	}

	job := models.JobPosting{
		EmployerID:          actor.ID,
		Title:               title,
		Location:            strings.TrimSpace(input.Location),
		Salary:              strings.TrimSpace(input.Salary),
		Description:         strings.TrimSpace(input.Description),
		RequiredSkills:      datatypes.JSON(encoded),
		ApplicationDeadline: input.ApplicationDeadline,
		ModerationStatus:    models.ModerationPending,
		OperationalStatus:   models.JobOpen,
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, fmt.Errorf("job service: create job: %w", err)
	}

	advise(s.log, "job submitted", s.notifier.NotifyRole(ctx, models.RoleAdmin,
		"New Job Posted",
		fmt.Sprintf("An employer has posted a new job: %q. Please review and approve.", job.Title)))

	dto := mapJob(job)
	return &dto, nil
}

// Get loads a single posting.
func (s *JobService) Get(ctx context.Context, jobID string) (*JobDTO, error) {
	ctx = ensureContext(ctx)
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	dto := mapJob(*job)
	return &dto, nil
}

// ListForEmployer returns the employer's own postings, newest first.
func (s *JobService) ListForEmployer(ctx context.Context, actor Actor) ([]JobDTO, error) {
	ctx = ensureContext(ctx)

	var rows []models.JobPosting
	if err := s.db.WithContext(ctx).
		Where("employer_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("job service: list employer jobs: %w", err)
	}
	return mapJobs(rows), nil
}

// ListAll returns every posting for the admin moderation screen.
func (s *JobService) ListAll(ctx context.Context, actor Actor) ([]JobDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var rows []models.JobPosting
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("job service: list jobs: %w", err)
	}
	return mapJobs(rows), nil
}

// Search returns postings visible to job seekers: Approved and Open only.
func (s *JobService) Search(ctx context.Context, input SearchJobsInput) ([]JobDTO, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Where("moderation_status = ? AND operational_status = ?", models.ModerationApproved, models.JobOpen).
		Order("created_at DESC")

	if keyword := strings.TrimSpace(input.Keyword); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if location := strings.TrimSpace(input.Location); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var rows []models.JobPosting
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("job service: search jobs: %w", err)
	}
	return mapJobs(rows), nil
}

// SetModerationStatus moves a posting between Pending and Approved. Rejection
// goes through Reject so the feedback requirement cannot be skipped. The
// owning employer is notified of every accepted change.
func (s *JobService) SetModerationStatus(ctx context.Context, actor Actor, jobID string, to models.ModerationStatus) (*JobDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if to == models.ModerationRejected {
		return nil, apperrors.NewBadRequest("rejection requires feedback; use the reject operation")
	}
	if !to.Valid() {
		return nil, apperrors.NewBadRequest("unknown moderation status")
	}

	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.ModerationStatus.CanTransition(to) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.db.WithContext(ctx).Model(job).
		Update("moderation_status", to).Error; err != nil {
		return nil, fmt.Errorf("job service: update moderation status: %w", err)
	}
	job.ModerationStatus = to
	metrics.StatusTransitions.WithLabelValues("job", string(to)).Inc()

	advise(s.log, "job moderated", s.notifier.NotifyUser(ctx, job.EmployerID, models.RoleEmployer,
		fmt.Sprintf("Job %q %s", job.Title, to),
		fmt.Sprintf("Admin has %s your job titled %q.", strings.ToLower(string(to)), job.Title)))

	dto := mapJob(*job)
	return &dto, nil
}

// Reject moves a posting to Rejected. The feedback record is written first;
// if it cannot be stored the rejection does not happen.
func (s *JobService) Reject(ctx context.Context, actor Actor, jobID string, input RejectJobInput) (*JobDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if err := validateRejectionReasons(input.Reasons); err != nil {
		return nil, err
	}

	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.ModerationStatus.CanTransition(models.ModerationRejected) {
		return nil, apperrors.ErrInvalidTransition
	}

	encoded, err := json.Marshal(input.Reasons)
	if err != nil {
		return nil, fmt.Errorf("job service: encode reasons: %w", err)
	}
	feedback := models.JobRejectionFeedback{
		JobID:           job.ID,
		EmployerID:      job.EmployerID,
		SelectedReasons: datatypes.JSON(encoded),
		Comment:         strings.TrimSpace(input.Comment),
	}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("job service: store rejection feedback: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(job).
		Update("moderation_status", models.ModerationRejected).Error; err != nil {
		return nil, fmt.Errorf("job service: update moderation status: %w", err)
	}
	job.ModerationStatus = models.ModerationRejected
	metrics.StatusTransitions.WithLabelValues("job", string(models.ModerationRejected)).Inc()

	advise(s.log, "job rejected", s.notifier.NotifyUser(ctx, job.EmployerID, models.RoleEmployer,
		fmt.Sprintf("Job %q Rejected", job.Title),
		fmt.Sprintf("Admin has rejected your job titled %q and provided feedback.", job.Title)))

	dto := mapJob(*job)
	return &dto, nil
}

// SetOperationalStatus toggles a posting between Open and Closed. Only the
// owning employer may do this.
func (s *JobService) SetOperationalStatus(ctx context.Context, actor Actor, jobID string, to models.OperationalStatus) (*JobDTO, error) {
	ctx = ensureContext(ctx)
	if !to.Valid() {
		return nil, apperrors.NewBadRequest("unknown operational status")
	}

	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleEmployer || job.EmployerID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	if job.OperationalStatus != to {
		if err := s.db.WithContext(ctx).Model(job).
			Update("operational_status", to).Error; err != nil {
			return nil, fmt.Errorf("job service: update operational status: %w", err)
		}
		job.OperationalStatus = to
	}

	dto := mapJob(*job)
	return &dto, nil
}

// Delete removes a posting. Admins may delete any posting, employers only
// their own. The owning employer always hears about it.
func (s *JobService) Delete(ctx context.Context, actor Actor, jobID string) error {
	ctx = ensureContext(ctx)

	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !(actor.Role == models.RoleEmployer && job.EmployerID == actor.ID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.JobPosting{}, "id = ?", job.ID).Error; err != nil {
		return fmt.Errorf("job service: delete job: %w", err)
	}

	message := fmt.Sprintf("Your job titled %q has been deleted.", job.Title)
	if actor.IsAdmin() {
		message = fmt.Sprintf("Admin has deleted your job titled %q.", job.Title)
	}
	advise(s.log, "job deleted", s.notifier.NotifyUser(ctx, job.EmployerID, models.RoleEmployer,
		fmt.Sprintf("Job %q Deleted", job.Title), message))

	return nil
}

// Save bookmarks a posting for the job seeker.
func (s *JobService) Save(ctx context.Context, actor Actor, jobID string) error {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleUser {
		return apperrors.ErrForbidden
	}
	if _, err := s.loadJob(ctx, jobID); err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("applicant_id = ? AND job_id = ?", actor.ID, jobID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("job service: check saved job: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflict("job already saved")
	}

	saved := models.SavedJob{ApplicantID: actor.ID, JobID: jobID}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return fmt.Errorf("job service: save job: %w", err)
	}
	return nil
}

// Unsave removes a bookmark.
func (s *JobService) Unsave(ctx context.Context, actor Actor, jobID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("applicant_id = ? AND job_id = ?", actor.ID, jobID).
		Delete(&models.SavedJob{})
	if result.Error != nil {
		return fmt.Errorf("job service: unsave job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListSaved returns the seeker's bookmarked postings.
func (s *JobService) ListSaved(ctx context.Context, actor Actor) ([]JobDTO, error) {
	ctx = ensureContext(ctx)

	var rows []models.JobPosting
	if err := s.db.WithContext(ctx).
		Joins("JOIN saved_jobs ON saved_jobs.job_id = job_postings.id").
		Where("saved_jobs.applicant_id = ?", actor.ID).
		Order("job_postings.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("job service: list saved jobs: %w", err)
	}
	return mapJobs(rows), nil
}

func (s *JobService) loadJob(ctx context.Context, jobID string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("job service: load job: %w", err)
	}
	return &job, nil
}

func validateRejectionReasons(reasons []string) error {
	if len(reasons) == 0 {
		return apperrors.NewBadRequest("at least one rejection reason is required")
	}
	for _, reason := range reasons {
		known := false
		for _, allowed := range models.RejectionReasons {
			if reason == allowed {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewBadRequest(fmt.Sprintf("unknown rejection reason %q", reason))
		}
	}
	return nil
}

func mapJobs(rows []models.JobPosting) []JobDTO {
	items := make([]JobDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapJob(row))
	}
	return items
}

func mapJob(row models.JobPosting) JobDTO {
	var skills []string
	if len(row.RequiredSkills) > 0 {
		_ = json.Unmarshal(row.RequiredSkills, &skills)
	}
	return JobDTO{
		ID:                  row.ID,
		EmployerID:          row.EmployerID,
		Title:               row.Title,
		Location:            row.Location,
		Salary:              row.Salary,
		Description:         row.Description,
		RequiredSkills:      skills,
		ApplicationDeadline: row.ApplicationDeadline,
		ModerationStatus:    row.ModerationStatus,
		OperationalStatus:   row.OperationalStatus,
		CreatedAt:           row.CreatedAt,
	}
}
