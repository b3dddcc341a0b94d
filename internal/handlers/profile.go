package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// ProfileHandler exposes HTTP endpoints for seeker and employer profiles.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(db *gorm.DB) (*ProfileHandler, error) {
	service, err := services.NewProfileService(db)
	if err != nil {
		return nil, err
	}
	return &ProfileHandler{service: service}, nil
}

// GetUserProfile returns the acting seeker's profile.
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	dto, err := h.service.GetUserProfile(requestContext(c), currentActor(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// UpdateUserProfile replaces the seeker's editable profile fields.
func (h *ProfileHandler) UpdateUserProfile(c *gin.Context) {
	var payload services.UpdateUserProfileInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.UpdateUserProfile(requestContext(c), currentActor(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// GetEmployerProfile returns the acting employer's company profile.
func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	dto, err := h.service.GetEmployerProfile(requestContext(c), currentActor(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// UpdateEmployerProfile replaces the employer's editable profile fields.
func (h *ProfileHandler) UpdateEmployerProfile(c *gin.Context) {
	var payload services.UpdateEmployerProfileInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.UpdateEmployerProfile(requestContext(c), currentActor(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}
