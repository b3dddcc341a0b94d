package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerInterviewRoutes(api *gin.RouterGroup, handler *handlers.InterviewHandler) {
	group := api.Group("/interviews")
	{
		group.GET("/mine", middleware.RequireRole(models.RoleUser), handler.ListMine)

		group.GET("", middleware.RequireRole(models.RoleEmployer), handler.ListForEmployer)
		group.PATCH("/:id", middleware.RequireRole(models.RoleEmployer), handler.Reschedule)
		group.DELETE("/:id", middleware.RequireRole(models.RoleEmployer), handler.Cancel)
	}

	api.POST("/applications/:id/interview", middleware.RequireRole(models.RoleEmployer), handler.Schedule)
}
