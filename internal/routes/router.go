package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixshare/internal/config"
	"pixshare/internal/delivery/http/handler"
	"pixshare/internal/infrastructure/database/postgres"
	"pixshare/internal/logger"
	"pixshare/internal/middleware"
	"pixshare/internal/notification"
	"pixshare/internal/usecase/account"
	"pixshare/internal/usecase/content"
)

// Services groups the wired use cases so main can run background jobs
// against the same instances the router serves.
type Services struct {
	Account *account.Service
	Content *content.Service
}

func SetupRoutes(cfg *config.Config, db *postgres.DB) (*gin.Engine, *Services) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	codeRepository := postgres.NewVerificationCodeRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	postRepository := postgres.NewPostRepository(db)
	commentRepository := postgres.NewCommentRepository(db)
	likeRepository := postgres.NewLikeRepository(db)

	notifier := notification.NewDispatcher(
		notification.NewEmailSender(&cfg.SMTP),
		notification.NewSMSSender(&cfg.SMS),
	)

	accountService := account.NewService(userRepository, codeRepository, refreshTokenRepo, notifier, cfg)
	accountHandler := handler.NewAccountHandler(accountService)

	contentService := content.NewService(postRepository, commentRepository, likeRepository, userRepository)
	postHandler := handler.NewPostHandler(contentService)
	commentHandler := handler.NewCommentHandler(contentService)

	v1 := router.Group("/api/v1")
	{
		accountHandler.RegisterAuthRoutes(v1)

		// Reads work anonymously; a valid token still annotates responses
		// with the viewer's like state.
		public := v1.Group("")
		public.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			postHandler.RegisterReadRoutes(public)
			commentHandler.RegisterReadRoutes(public)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			accountHandler.RegisterProtectedAuthRoutes(protected)
			accountHandler.RegisterProfileRoutes(protected)
			postHandler.RegisterWriteRoutes(protected)
			commentHandler.RegisterWriteRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly())
		{
			postHandler.RegisterModerationRoutes(admin)
		}
	}

	logger.Info("All routes initialized")

	return router, &Services{
		Account: accountService,
		Content: contentService,
	}
}
