package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobmatch-backend/config"
	_ "go-jobmatch-backend/docs" // Important for Swagger
	v1 "go-jobmatch-backend/internal/delivery/http/v1"
	"go-jobmatch-backend/internal/repository/postgres"
	"go-jobmatch-backend/internal/usecase"
	"go-jobmatch-backend/internal/worker"
	"go-jobmatch-backend/pkg/database"
	"go-jobmatch-backend/pkg/logger"
	"go-jobmatch-backend/pkg/redis"
	"go-jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Job Matching Backend API
// @version         1.0
// @description     Interaction backend for the job-matching platform: invitations, block lists, favorites, chat and notifications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job-matching backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional: live notifications degrade gracefully)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, live notifications disabled", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	invitationRepo := postgres.NewInvitationRepository(dbPool)
	blackListRepo := postgres.NewBlackListRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	favoriteRepo := postgres.NewFavoriteRepository(dbPool)
	vacancyRepo := postgres.NewVacancyRepository(dbPool)
	chatRepo := postgres.NewChatRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	gateUC := usecase.NewGateUsecase(userRepo, blackListRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, gateUC, redis.Client())
	invitationUC := usecase.NewInvitationUsecase(
		invitationRepo, userRepo, vacancyRepo, gateUC, notificationUC, validate,
		time.Duration(cfg.InvitationTTLDays)*24*time.Hour,
	)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, vacancyRepo, gateUC)
	chatUC := usecase.NewChatUsecase(chatRepo, gateUC, notificationUC, validate)
	authUC := usecase.NewAuthUsecase(userRepo, validate)

	// 7. Setup Background Worker
	sweeper := worker.NewSweeper(invitationUC, cfg.InvitationSweepCron)
	if err := sweeper.Start(); err != nil {
		logger.Log.Error("Failed to start invitation sweeper", "error", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		GateUC:         gateUC,
		InvitationUC:   invitationUC,
		NotificationUC: notificationUC,
		FavoriteUC:     favoriteUC,
		ChatUC:         chatUC,
		RedisClient:    redis.Client(),
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
