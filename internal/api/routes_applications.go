package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerApplicationRoutes(api *gin.RouterGroup, handler *handlers.ApplicationHandler) {
	group := api.Group("/applications")
	{
		group.POST("", middleware.RequireRole(models.RoleUser), handler.Apply)
		group.GET("/mine", middleware.RequireRole(models.RoleUser), handler.ListMine)
		group.GET("/suggestions", middleware.RequireRole(models.RoleUser), handler.ListSuggestions)

		group.GET("", middleware.RequireRole(models.RoleEmployer), handler.ListForEmployer)
		group.PATCH("/:id/status", middleware.RequireRole(models.RoleEmployer), handler.SetStatus)
		group.POST("/:id/reject", middleware.RequireRole(models.RoleEmployer), handler.Reject)
	}

	api.GET("/jobs/:id/applications", middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), handler.ListForJob)
}
