package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/notifications"
	"github.com/nexttalent/nexttalent/internal/services"
	"github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for notifications.
type NotificationHandler struct {
	service *services.NotificationService
	hub     *notifications.Hub
	poller  *notifications.Poller
	jwt     *iauth.JWTService
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(db *gorm.DB, hub *notifications.Hub, poller *notifications.Poller, jwt *iauth.JWTService) (*NotificationHandler, error) {
	service, err := services.NewNotificationService(db)
	if err != nil {
		return nil, err
	}
	return &NotificationHandler{
		service: service,
		hub:     hub,
		poller:  poller,
		jwt:     jwt,
	}, nil
}

// List returns the current actor's inbox.
func (h *NotificationHandler) List(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	limit := parseIntQuery(c, "limit", 25)
	offset := parseIntQuery(c, "offset", 0)

	items, err := h.service.ListForRecipient(requestContext(c), services.ListNotificationsInput{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// UnreadCount returns the unread badge count for the current actor.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	count, err := h.service.CountUnread(requestContext(c), actor.ID, actor.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead marks one notification in the actor's inbox as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	dto, err := h.service.MarkRead(requestContext(c), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.refreshBadges(c)
	response.Success(c, http.StatusOK, dto)
}

// MarkAllRead marks every notification in the actor's inbox as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.MarkAllRead(requestContext(c), actor); err != nil {
		response.Error(c, err)
		return
	}

	h.refreshBadges(c)
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// Delete removes a notification from the actor's inbox.
func (h *NotificationHandler) Delete(c *gin.Context) {
	actor := currentActor(c)
	if actor.ID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.Delete(requestContext(c), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	h.refreshBadges(c)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Stream upgrades the connection to a WebSocket for unread badge updates.
// The token rides in the query string because browsers cannot set headers on
// WebSocket requests.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.jwt == nil || h.hub == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authz := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token = strings.TrimSpace(authz[7:])
		}
	}

	if token == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	_ = h.hub.Serve(claims.UserID, claims.Role, c.Writer, c.Request)
}

func (h *NotificationHandler) refreshBadges(c *gin.Context) {
	if h.poller != nil {
		h.poller.Refresh(requestContext(c))
	}
}
