package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// InterviewHandler exposes HTTP endpoints for interview schedules.
type InterviewHandler struct {
	service *services.InterviewService
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(db *gorm.DB, notifier services.Notifier) (*InterviewHandler, error) {
	service, err := services.NewInterviewService(db, notifier)
	if err != nil {
		return nil, err
	}
	return &InterviewHandler{service: service}, nil
}

// Schedule creates the schedule for an approved application.
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var payload services.ScheduleInterviewInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Schedule(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto)
}

// Reschedule updates an existing schedule.
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	var payload services.ScheduleInterviewInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Reschedule(requestContext(c), currentActor(c),
		strings.TrimSpace(c.Param("id")), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Cancel removes a schedule.
func (h *InterviewHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

// ListMine returns the acting seeker's upcoming interviews.
func (h *InterviewHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListUpcomingForApplicant(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListForEmployer returns upcoming interviews across the employer's postings.
func (h *InterviewHandler) ListForEmployer(c *gin.Context) {
	items, err := h.service.ListUpcomingForEmployer(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
