package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/models"
)

func registerReviewRoutes(r *gin.Engine, api *gin.RouterGroup, handler *handlers.ReviewHandler) {
	// Approved reviews are a public landing-page surface.
	r.GET("/api/reviews", handler.ListApproved)

	group := api.Group("/reviews")
	{
		group.POST("", middleware.RequireRole(models.RoleUser, models.RoleEmployer), handler.Submit)

		group.GET("/all", middleware.RequireRole(models.RoleAdmin), handler.ListAll)
		group.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), handler.Approve)

		group.DELETE("/:id", handler.Delete)
	}
}
