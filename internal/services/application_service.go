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

// ApplicationDTO represents the API-friendly application payload.
type ApplicationDTO struct {
	ID             string                   `json:"id"`
	ApplicantID    string                   `json:"applicant_id"`
	JobID          string                   `json:"job_id"`
	JobTitle       string                   `json:"job_title,omitempty"`
	ApplicantName  string                   `json:"applicant_name"`
	ApplicantEmail string                   `json:"applicant_email"`
	ApplicantPhone string                   `json:"applicant_phone"`
	ResumeLink     string                   `json:"resume_link"`
	Status         models.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
}

// SuggestionInput carries the optional structured feedback attached to a
// rejection: one rating per fixed category plus free text and a video link.
type SuggestionInput struct {
	Answers   map[string]string
	Comment   string
	VideoLink string
}

// SuggestionDTO represents a stored rejection suggestion.
type SuggestionDTO struct {
	ID               string            `json:"id"`
	JobTitle         string            `json:"job_title"`
	CompanyName      string            `json:"company_name"`
	QuestionsAnswers map[string]string `json:"questions_answers,omitempty"`
	Comment          string            `json:"comment"`
	VideoLink        string            `json:"video_link"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ApplicationService manages job applications: submission, the employer-owned
// status workflow, and rejection suggestions.
type ApplicationService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(db *gorm.DB, notifier Notifier) (*ApplicationService, error) {
	if db == nil {
		return nil, errors.New("application service: db is required")
	}
	if notifier == nil {
		return nil, errors.New("application service: notifier is required")
	}
	return &ApplicationService{db: db, notifier: notifier, log: logger.WithModule("applications")}, nil
}

// Apply submits an application to a visible posting. The applicant's contact
// details are copied from their profile at apply time. The employer and the
// admin inbox both hear about the new applicant.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID string) (*ApplicationDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleUser {
		return nil, apperrors.ErrForbidden
	}

	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("application service: load job: %w", err)
	}
	if !job.VisibleToSeekers() {
		return nil, apperrors.NewBadRequest("job is not open for applications")
	}
	if job.ApplicationDeadline != nil && job.ApplicationDeadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequest("application deadline has passed")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("applicant_id = ? AND job_id = ?", actor.ID, jobID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("application service: check duplicate: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.NewConflict("you have already applied to this job")
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBadRequest("complete your profile before applying")
		}
		return nil, fmt.Errorf("application service: load profile: %w", err)
	}

	application := models.Application{
		ApplicantID:    actor.ID,
		JobID:          job.ID,
		ApplicantName:  profile.FullName,
		ApplicantEmail: profile.Email,
		ApplicantPhone: profile.Phone,
		ResumeLink:     profile.ResumeLink,
		Status:         models.ApplicationPending,
	}
	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		return nil, fmt.Errorf("application service: create application: %w", err)
	}

	applicantName := defaultIfEmpty(profile.FullName, "A user")
	advise(s.log, "applicant announced", s.notifier.NotifyUser(ctx, job.EmployerID, models.RoleEmployer,
		"New Job Application",
		fmt.Sprintf("%s applied to your job: %s.", applicantName, job.Title)))
	advise(s.log, "applicant announced", s.notifier.NotifyRole(ctx, models.RoleAdmin,
		"New Job Application",
		fmt.Sprintf("%s applied to the job: %s.", applicantName, job.Title)))

	dto := mapApplication(application, job.Title)
	return &dto, nil
}

// SetStatus transitions an application. Only the employer owning the
// referenced posting may do this, only moves permitted by the transition
// table are accepted, and every accepted move sends exactly one notification
// to the applicant. Notification failure never blocks the write.
func (s *ApplicationService) SetStatus(ctx context.Context, actor Actor, applicationID string, to models.ApplicationStatus) (*ApplicationDTO, error) {
	ctx = ensureContext(ctx)
	if !to.Valid() {
		return nil, apperrors.NewBadRequest("unknown application status")
	}

	application, job, err := s.loadOwned(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	if !application.Status.CanTransition(to) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.db.WithContext(ctx).Model(application).
		Update("status", to).Error; err != nil {
		return nil, fmt.Errorf("application service: update status: %w", err)
	}
	application.Status = to
	metrics.StatusTransitions.WithLabelValues("application", string(to)).Inc()

	advise(s.log, "status announced", s.notifier.NotifyUser(ctx, application.ApplicantID, models.RoleUser,
		"Application Status Updated",
		fmt.Sprintf("Your application for %q was %s.", job.Title, to)))

	dto := mapApplication(*application, job.Title)
	return &dto, nil
}

// Reject transitions an application to Rejected and optionally stores a
// structured suggestion record. The suggestion is a separate best-effort
// insert: its failure never undoes the rejection or its notification.
func (s *ApplicationService) Reject(ctx context.Context, actor Actor, applicationID string, suggestion *SuggestionInput) (*ApplicationDTO, error) {
	ctx = ensureContext(ctx)

	dto, err := s.SetStatus(ctx, actor, applicationID, models.ApplicationRejected)
	if err != nil {
		return nil, err
	}

	if suggestion != nil {
		if err := s.storeSuggestion(ctx, actor, dto, suggestion); err != nil {
			s.log.Warn("suggestion record dropped",
				zap.String("application_id", applicationID),
				zap.Error(err))
		}
	}

	return dto, nil
}

// ListForJob returns all applications to one of the employer's postings.
func (s *ApplicationService) ListForJob(ctx context.Context, actor Actor, jobID string) ([]ApplicationDTO, error) {
	ctx = ensureContext(ctx)

	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("application service: load job: %w", err)
	}
	if !actor.IsAdmin() && job.EmployerID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	var rows []models.Application
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("application service: list applications: %w", err)
	}

	items := make([]ApplicationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapApplication(row, job.Title))
	}
	return items, nil
}

// ListForEmployer returns applications across all of the employer's postings.
func (s *ApplicationService) ListForEmployer(ctx context.Context, actor Actor) ([]ApplicationDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleEmployer {
		return nil, apperrors.ErrForbidden
	}

	type row struct {
		models.Application
		JobTitle string
	}
	var rows []row
	if err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("applications.*, job_postings.title AS job_title").
		Joins("JOIN job_postings ON job_postings.id = applications.job_id").
		Where("job_postings.employer_id = ?", actor.ID).
		Order("applications.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("application service: list employer applications: %w", err)
	}

	items := make([]ApplicationDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, mapApplication(r.Application, r.JobTitle))
	}
	return items, nil
}

// ListForApplicant returns the seeker's own applications with job titles.
func (s *ApplicationService) ListForApplicant(ctx context.Context, actor Actor) ([]ApplicationDTO, error) {
	ctx = ensureContext(ctx)

	type row struct {
		models.Application
		JobTitle string
	}
	var rows []row
	if err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("applications.*, job_postings.title AS job_title").
		Joins("LEFT JOIN job_postings ON job_postings.id = applications.job_id").
		Where("applications.applicant_id = ?", actor.ID).
		Order("applications.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("application service: list applicant applications: %w", err)
	}

	items := make([]ApplicationDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, mapApplication(r.Application, r.JobTitle))
	}
	return items, nil
}

// ListSuggestions returns the structured rejection feedback stored for the
// applicant.
func (s *ApplicationService) ListSuggestions(ctx context.Context, actor Actor) ([]SuggestionDTO, error) {
	ctx = ensureContext(ctx)

	var rows []models.RejectedSuggestion
	if err := s.db.WithContext(ctx).
		Where("applicant_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("application service: list suggestions: %w", err)
	}

	items := make([]SuggestionDTO, 0, len(rows))
	for _, row := range rows {
		var answers map[string]string
		if len(row.QuestionsAnswers) > 0 {
			_ = json.Unmarshal(row.QuestionsAnswers, &answers)
		}
		items = append(items, SuggestionDTO{
			ID:               row.ID,
			JobTitle:         row.JobTitle,
			CompanyName:      row.CompanyName,
			QuestionsAnswers: answers,
			Comment:          row.Comment,
			VideoLink:        row.VideoLink,
			CreatedAt:        row.CreatedAt,
		})
	}
	return items, nil
}

func (s *ApplicationService) storeSuggestion(ctx context.Context, actor Actor, application *ApplicationDTO, input *SuggestionInput) error {
	if err := validateSuggestionAnswers(input.Answers); err != nil {
		return err
	}

	companyName := ""
	var employer models.EmployerProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&employer).Error; err == nil {
		companyName = employer.CompanyName
	}

	record := models.RejectedSuggestion{
		ApplicantID: application.ApplicantID,
		JobTitle:    application.JobTitle,
		CompanyName: companyName,
		Comment:     strings.TrimSpace(input.Comment),
		VideoLink:   strings.TrimSpace(input.VideoLink),
	}
	if len(input.Answers) > 0 {
		encoded, err := json.Marshal(input.Answers)
		if err != nil {
			return fmt.Errorf("encode answers: %w", err)
		}
		record.QuestionsAnswers = datatypes.JSON(encoded)
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("store suggestion: %w", err)
	}
	return nil
}

func (s *ApplicationService) loadOwned(ctx context.Context, actor Actor, applicationID string) (*models.Application, *models.JobPosting, error) {
	var application models.Application
	if err := s.db.WithContext(ctx).Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("application service: load application: %w", err)
	}

	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("id = ?", application.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("application service: load job: %w", err)
	}

	if actor.Role != models.RoleEmployer || job.EmployerID != actor.ID {
		return nil, nil, apperrors.ErrForbidden
	}
	return &application, &job, nil
}

func validateSuggestionAnswers(answers map[string]string) error {
	for category, rating := range answers {
		if !containsString(models.SuggestionCategories, category) {
			return fmt.Errorf("unknown suggestion category %q", category)
		}
		if !containsString(models.SuggestionRatings, rating) {
			return fmt.Errorf("unknown rating %q for category %q", rating, category)
		}
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func mapApplication(row models.Application, jobTitle string) ApplicationDTO {
	return ApplicationDTO{
		ID:             row.ID,
		ApplicantID:    row.ApplicantID,
		JobID:          row.JobID,
		JobTitle:       jobTitle,
		ApplicantName:  row.ApplicantName,
		ApplicantEmail: row.ApplicantEmail,
		ApplicantPhone: row.ApplicantPhone,
		ResumeLink:     row.ResumeLink,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
	}
}
