package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/internal/services"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentActor resolves the authenticated actor placed in the context by the
// auth middleware.
func currentActor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:   c.GetString(middleware.CtxUserIDKey),
		Role: models.Role(c.GetString(middleware.CtxRoleKey)),
	}
}
