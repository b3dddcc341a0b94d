package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerFeedRoutes(api *gin.RouterGroup, handler *handlers.FeedHandler) {
	group := api.Group("/feed")
	{
		group.GET("", handler.List)

		group.POST("", middleware.RequireRole(models.RoleAdmin), handler.Publish)
		group.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), handler.Delete)
	}
}
