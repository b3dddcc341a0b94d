package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	service *services.AccountService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(db *gorm.DB, jwt *iauth.JWTService) (*AuthHandler, error) {
	service, err := services.NewAccountService(db, jwt)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{service: service}, nil
}

// Register creates a new seeker or employer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var payload services.RegisterInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.service.Register(requestContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login authenticates credentials and issues an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload services.LoginInput
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.Authenticate(requestContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	dto, err := h.service.Get(requestContext(c), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}
