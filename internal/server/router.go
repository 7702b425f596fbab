package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/genomelens-backend/internal/handlers"
	"github.com/yungbote/genomelens-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	ProfileHandler    *handlers.ProfileHandler
	TraitHandler      *handlers.TraitHandler
	AssessmentHandler *handlers.AssessmentHandler
	SSEHandler        *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("genomelens-backend"))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Profiles
	protected.POST("/profiles", cfg.ProfileHandler.Create)
	protected.GET("/profiles", cfg.ProfileHandler.List)
	protected.GET("/profiles/:profileID", cfg.ProfileHandler.Get)
	// Traits
	protected.GET("/profiles/:profileID/traits", cfg.TraitHandler.Get)
	protected.PATCH("/profiles/:profileID/traits", cfg.TraitHandler.Merge)
	protected.PUT("/profiles/:profileID/traits", cfg.TraitHandler.Replace)
	// Assessments
	protected.POST("/profiles/:profileID/assessments/gene-a", cfg.AssessmentHandler.SubmitGeneA)
	protected.GET("/profiles/:profileID/assessments", cfg.AssessmentHandler.List)

	return router
}
