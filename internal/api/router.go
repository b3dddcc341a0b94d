package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/handlers"
	"github.com/nexttalent/nexttalent/internal/middleware"
	"github.com/nexttalent/nexttalent/internal/notifications"
	"github.com/nexttalent/nexttalent/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, hub *notifications.Hub, poller *notifications.Poller) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	notifier, err := services.NewNotificationService(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.NoRoute(middleware.NotFoundHandler())

	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(db, jwt)
	if err != nil {
		return nil, err
	}

	// Public routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	jobHandler, err := handlers.NewJobHandler(db, notifier)
	if err != nil {
		return nil, err
	}
	r.GET("/api/jobs/search", jobHandler.Search)

	notificationHandler, err := handlers.NewNotificationHandler(db, hub, poller, jwt)
	if err != nil {
		return nil, err
	}
	// WebSocket auth rides in the query string, outside the bearer middleware.
	r.GET("/api/notifications/stream", notificationHandler.Stream)

	requireAuth := middleware.Auth(jwt)
	api := r.Group("/api")
	api.Use(requireAuth)

	api.GET("/auth/me", authHandler.Me)

	registerJobRoutes(api, jobHandler)
	registerNotificationRoutes(api, notificationHandler)

	applicationHandler, err := handlers.NewApplicationHandler(db, notifier)
	if err != nil {
		return nil, err
	}
	registerApplicationRoutes(api, applicationHandler)

	interviewHandler, err := handlers.NewInterviewHandler(db, notifier)
	if err != nil {
		return nil, err
	}
	registerInterviewRoutes(api, interviewHandler)

	reviewHandler, err := handlers.NewReviewHandler(db)
	if err != nil {
		return nil, err
	}
	registerReviewRoutes(r, api, reviewHandler)

	feedHandler, err := handlers.NewFeedHandler(db, notifier)
	if err != nil {
		return nil, err
	}
	registerFeedRoutes(api, feedHandler)

	profileHandler, err := handlers.NewProfileHandler(db)
	if err != nil {
		return nil, err
	}
	registerProfileRoutes(api, profileHandler)

	return r, nil
}
