package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerJobRoutes(api *gin.RouterGroup, handler *handlers.JobHandler) {
	group := api.Group("/jobs")
	{
		group.GET("/:id", handler.Get)

		group.POST("", middleware.RequireRole(models.RoleEmployer), handler.Create)
		group.GET("/mine", middleware.RequireRole(models.RoleEmployer), handler.ListMine)
		group.PATCH("/:id/operational-status", middleware.RequireRole(models.RoleEmployer), handler.SetOperationalStatus)

		group.GET("", middleware.RequireRole(models.RoleAdmin), handler.ListAll)
		group.PATCH("/:id/moderation-status", middleware.RequireRole(models.RoleAdmin), handler.Moderate)
		group.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin), handler.Reject)

		group.DELETE("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleEmployer), handler.Delete)

		group.POST("/:id/save", middleware.RequireRole(models.RoleUser), handler.Save)
		group.DELETE("/:id/save", middleware.RequireRole(models.RoleUser), handler.Unsave)
	}

	api.GET("/saved-jobs", middleware.RequireRole(models.RoleUser), handler.ListSaved)
}
