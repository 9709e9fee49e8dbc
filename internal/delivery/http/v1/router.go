package v1

import (
	"net/http"
	"time"

	"go-jobmatch-backend/config"
	"go-jobmatch-backend/internal/delivery/http/middleware"
	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	GateUC         domain.GateUsecase
	InvitationUC   domain.InvitationUsecase
	NotificationUC domain.NotificationUsecase
	FavoriteUC     domain.FavoriteUsecase
	ChatUC         domain.ChatUsecase
	RedisClient    *redis.Client
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitGlobalThreshold,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
	}))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC))
	{
		NewProfileHandler(protected, deps.AuthUC)
		NewInvitationHandler(protected, deps.InvitationUC)
		NewBlackListHandler(protected, deps.GateUC)
		NewNotificationHandler(protected, deps.NotificationUC, deps.RedisClient, deps.Config.FrontendURL)
		NewFavoriteHandler(protected, deps.FavoriteUC)
		NewChatHandler(protected, deps.ChatUC)
	}

	return r
}
