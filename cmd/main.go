package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/genomelens-backend/internal/db"
	"github.com/yungbote/genomelens-backend/internal/handlers"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/middleware"
	"github.com/yungbote/genomelens-backend/internal/observability"
	"github.com/yungbote/genomelens-backend/internal/repos"
	"github.com/yungbote/genomelens-backend/internal/server"
	"github.com/yungbote/genomelens-backend/internal/services"
	"github.com/yungbote/genomelens-backend/internal/sse"
	"github.com/yungbote/genomelens-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "genomelens-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	traitRepo := repos.NewTraitRepo(thePG, log)
	assessmentRepo := repos.NewAssessmentRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	var sseBus sse.Bus
	if bus, busErr := sse.NewRedisBus(log); busErr != nil {
		log.Warn("Redis bus unavailable; SSE stays single-instance", "error", busErr)
	} else {
		sseBus = bus
		if fwdErr := bus.StartForwarder(context.Background(), sseHub.Broadcast); fwdErr != nil {
			log.Warn("Redis forwarder failed to start", "error", fwdErr)
		}
		defer bus.Close()
	}
	notifier := services.NewEventNotifier(log, sseHub, sseBus)

	// Services
	log.Info("Setting up Services from main...")
	userService := services.NewUserService(thePG, log, userRepo)
	profileService := services.NewProfileService(thePG, log, profileRepo, traitRepo, userRepo, notifier)
	traitService := services.NewTraitService(thePG, log, traitRepo, notifier)
	assessmentService := services.NewAssessmentService(thePG, log, profileRepo, traitRepo, assessmentRepo, notifier)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, profileService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	traitHandler := handlers.NewTraitHandler(profileService, traitService)
	assessmentHandler := handlers.NewAssessmentHandler(profileService, assessmentService)
	sseHandler := handlers.NewSSEHandler(sseHub)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		ProfileHandler:    profileHandler,
		TraitHandler:      traitHandler,
		AssessmentHandler: assessmentHandler,
		SSEHandler:        sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
