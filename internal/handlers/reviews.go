package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// ReviewHandler exposes HTTP endpoints for platform reviews.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler constructs a review handler.
func NewReviewHandler(db *gorm.DB) (*ReviewHandler, error) {
	service, err := services.NewReviewService(db)
	if err != nil {
		return nil, err
	}
	return &ReviewHandler{service: service}, nil
}

// Submit stores a new review from the acting seeker or employer.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var payload services.SubmitReviewInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Submit(requestContext(c), currentActor(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto)
}

// ListApproved returns the publicly visible reviews.
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	items, err := h.service.ListApproved(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListAll returns every review for moderation.
func (h *ReviewHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Approve marks a review as publicly visible.
func (h *ReviewHandler) Approve(c *gin.Context) {
	dto, err := h.service.Approve(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Delete removes a review.
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
