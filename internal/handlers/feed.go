package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// FeedHandler exposes HTTP endpoints for admin announcements.
type FeedHandler struct {
	service *services.FeedService
}

// NewFeedHandler constructs a feed handler.
func NewFeedHandler(db *gorm.DB, notifier services.Notifier) (*FeedHandler, error) {
	service, err := services.NewFeedService(db, notifier)
	if err != nil {
		return nil, err
	}
	return &FeedHandler{service: service}, nil
}

// Publish stores an announcement and fans it out to its audience.
func (h *FeedHandler) Publish(c *gin.Context) {
	var payload services.PublishNewsInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Publish(requestContext(c), currentActor(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto)
}

// List returns announcements visible to the actor's role.
func (h *FeedHandler) List(c *gin.Context) {
	items, err := h.service.List(requestContext(c), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Delete removes an announcement.
func (h *FeedHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), currentActor(c), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
