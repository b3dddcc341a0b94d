package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerProfileRoutes(api *gin.RouterGroup, handler *handlers.ProfileHandler) {
	group := api.Group("/profile")
	{
		group.GET("/user", middleware.RequireRole(models.RoleUser), handler.GetUserProfile)
		group.PUT("/user", middleware.RequireRole(models.RoleUser), handler.UpdateUserProfile)

		group.GET("/employer", middleware.RequireRole(models.RoleEmployer), handler.GetEmployerProfile)
		group.PUT("/employer", middleware.RequireRole(models.RoleEmployer), handler.UpdateEmployerProfile)
	}
}
