package routes

import (
	"net/http"

	"sahel-cargo/internal/config"
	"sahel-cargo/internal/delivery/http/handler"
	"sahel-cargo/internal/infrastructure/database/postgres"
	"sahel-cargo/internal/integrations/sms"
	"sahel-cargo/internal/logger"
	"sahel-cargo/internal/middleware"
	"sahel-cargo/internal/usecase/auth"
	"sahel-cargo/internal/usecase/client"
	"sahel-cargo/internal/usecase/container"
	"sahel-cargo/internal/usecase/notifier"
	"sahel-cargo/internal/usecase/parcel"
	"sahel-cargo/internal/usecase/tracking"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires repositories, services and handlers onto a gin engine.
// The container service is returned so the GPS position feed can reuse it.
func SetupRoutes(cfg *config.Config, db *postgres.DB) (*gin.Engine, *container.Service) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
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

	parcelRepository := postgres.NewParcelRepository(db)
	clientRepository := postgres.NewClientRepository(db)
	containerRepository := postgres.NewContainerRepository(db)
	notificationRepository := postgres.NewNotificationRepository(db)
	userRepository := postgres.NewUserRepository(db)

	smsGateway := sms.NewHTTPClient(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.Sender, cfg.SMS.SMSTimeout())
	notifierService := notifier.NewService(
		parcelRepository,
		clientRepository,
		notificationRepository,
		smsGateway,
		cfg.Notify.TrackingBaseURL,
		cfg.Notify.Concurrency,
	)

	containerService := container.NewService(containerRepository, parcelRepository, notifierService)
	containerHandler := handler.NewContainerHandler(containerService)

	parcelService := parcel.NewService(parcelRepository, clientRepository, containerRepository)
	parcelHandler := handler.NewParcelHandler(parcelService)

	clientService := client.NewService(clientRepository)
	clientHandler := handler.NewClientHandler(clientService)

	trackingService := tracking.NewService(parcelRepository, clientRepository, containerRepository)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	authService := auth.NewService(userRepository, cfg)
	authHandler := handler.NewAuthHandler(authService)

	v1 := router.Group("/api/v1")
	{
		// Public endpoints: recipients track by number, staff log in.
		authHandler.RegisterPublicRoutes(v1)
		trackingHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		protected.Use(middleware.OperatorOrAdmin())
		{
			containerHandler.RegisterRoutes(protected)
			parcelHandler.RegisterRoutes(protected)
			clientHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router, containerService
}
