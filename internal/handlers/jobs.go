package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/internal/services"
	appErrors "github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// JobHandler exposes HTTP endpoints for job postings: employer submission,
// admin moderation, seeker search, and bookmarks.
type JobHandler struct {
	service *services.JobService
}

// NewJobHandler constructs a job handler.
func NewJobHandler(db *gorm.DB, notifier services.Notifier) (*JobHandler, error) {
	service, err := services.NewJobService(db, notifier)
	if err != nil {
		return nil, err
	}
	return &JobHandler{service: service}, nil
}

type createJobPayload struct {
	Title               string   `json:"title" validate:"required,max=255"`
	Location            string   `json:"location" validate:"omitempty,max=255"`
	Salary              string   `json:"salary" validate:"omitempty,max=128"`
	Description         string   `json:"description" validate:"omitempty,max=8000"`
	RequiredSkills      []string `json:"required_skills" validate:"dive,max=64"`
	ApplicationDeadline string   `json:"application_deadline" validate:"omitempty"`
}

// Create registers a new posting for the acting employer.
func (h *JobHandler) Create(c *gin.Context) {
	var payload createJobPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	var deadline *time.Time
	if strings.TrimSpace(payload.ApplicationDeadline) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(payload.ApplicationDeadline))
		if err != nil {
			response.Error(c, appErrors.NewBadRequest("application deadline must use the YYYY-MM-DD format"))
			return
		}
		deadline = &parsed
	}

	dto, err := h.service.Create(requestContext(c), currentActor(c), services.CreateJobInput{
		Title:               payload.Title,
		Location:            payload.Location,
		Salary:              payload.Salary,
		Description:         payload.Description,
		RequiredSkills:      payload.RequiredSkills,
		ApplicationDeadline: deadline,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Get returns one posting.
func (h *JobHandler) Get(c *gin.Context) {
	dto, err := h.service.Get(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Search returns the seeker-facing job list.
func (h *JobHandler) Search(c *gin.Context) {
	items, err := h.service.Search(requestContext(c), services.SearchJobsInput{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListMine returns the acting employer's postings.
func (h *JobHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListForEmployer(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListAll returns every posting for moderation.
func (h *JobHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

type moderatePayload struct {
	Status string `json:"status" validate:"required"`
}

// Moderate moves a posting between Pending and Approved.
func (h *JobHandler) Moderate(c *gin.Context) {
	var payload moderatePayload
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.SetModerationStatus(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), models.ModerationStatus(payload.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

type rejectJobPayload struct {
	Reasons []string `json:"reasons" validate:"required,min=1"`
	Comment string   `json:"comment" validate:"omitempty,max=2000"`
}

// Reject moves a posting to Rejected with mandatory checklist feedback.
func (h *JobHandler) Reject(c *gin.Context) {
	var payload rejectJobPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Reject(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), services.RejectJobInput{
			Reasons: payload.Reasons,
			Comment: payload.Comment,
		})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

type operationalPayload struct {
	Status string `json:"status" validate:"required"`
}

// SetOperationalStatus toggles a posting between Open and Closed.
func (h *JobHandler) SetOperationalStatus(c *gin.Context) {
	var payload operationalPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.SetOperationalStatus(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), models.OperationalStatus(payload.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Delete removes a posting.
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Save bookmarks a posting for the acting seeker.
func (h *JobHandler) Save(c *gin.Context) {
	if err := h.service.Save(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"saved": true})
}

// Unsave removes a bookmark.
func (h *JobHandler) Unsave(c *gin.Context) {
	if err := h.service.Unsave(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": false})
}

// ListSaved returns the acting seeker's bookmarks.
func (h *JobHandler) ListSaved(c *gin.Context) {
	items, err := h.service.ListSaved(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
