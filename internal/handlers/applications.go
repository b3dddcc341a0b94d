package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// ApplicationHandler exposes HTTP endpoints for job applications.
type ApplicationHandler struct {
	service *services.ApplicationService
}

// NewApplicationHandler constructs an application handler.
func NewApplicationHandler(db *gorm.DB, notifier services.Notifier) (*ApplicationHandler, error) {
	service, err := services.NewApplicationService(db, notifier)
	if err != nil {
		return nil, err
	}
	return &ApplicationHandler{service: service}, nil
}

type applyPayload struct {
	JobID string `json:"job_id" validate:"required"`
}

// Apply submits an application to an open posting.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var payload applyPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Apply(requestContext(c), currentActor(c), payload.JobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// ListMine returns the acting seeker's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListForApplicant(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListForJob returns applications to one posting.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	items, err := h.service.ListForJob(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListForEmployer returns applications across the employer's postings.
func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	items, err := h.service.ListForEmployer(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

type applicationStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus transitions an application through the workflow.
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var payload applicationStatusPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.SetStatus(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), models.ApplicationStatus(payload.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

type rejectApplicationPayload struct {
	Answers   map[string]string `json:"answers" validate:"omitempty"`
	Comment   string            `json:"comment" validate:"omitempty,max=2000"`
	VideoLink string            `json:"video_link" validate:"omitempty,url"`
}

// Reject moves an application to Rejected with optional structured feedback.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	var payload rejectApplicationPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	var suggestion *services.SuggestionInput
	if len(payload.Answers) > 0 || payload.Comment != "" || payload.VideoLink != "" {
		suggestion = &services.SuggestionInput{
			Answers:   payload.Answers,
			Comment:   payload.Comment,
			VideoLink: payload.VideoLink,
		}
	}

	dto, err := h.service.Reject(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), suggestion)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// ListSuggestions returns the seeker's stored rejection feedback.
func (h *ApplicationHandler) ListSuggestions(c *gin.Context) {
	items, err := h.service.ListSuggestions(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
