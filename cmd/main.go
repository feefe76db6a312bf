package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/conterGui/Aconchego-Pap/docs"
	"github.com/conterGui/Aconchego-Pap/internal/analytics"
	"github.com/conterGui/Aconchego-Pap/internal/caching"
	"github.com/conterGui/Aconchego-Pap/internal/config"
	"github.com/conterGui/Aconchego-Pap/internal/events"
	"github.com/conterGui/Aconchego-Pap/internal/handlers"
	"github.com/conterGui/Aconchego-Pap/internal/jobs/background"
	"github.com/conterGui/Aconchego-Pap/internal/logger"
	"github.com/conterGui/Aconchego-Pap/internal/middleware"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"
	"github.com/conterGui/Aconchego-Pap/internal/services"
	"github.com/conterGui/Aconchego-Pap/pkg/database"
)

const version = "1.0.0"

// @title Aconchego Coffee Shop API
// @version 1.0
// @description Menu, cart, checkout and admin back-office for the Aconchego coffee shop.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.JWTSecretRandom {
		log.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	ctx := context.Background()

	// Database
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Redis
	redisClient := caching.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	cacheSvc := caching.NewRedisCacheService(redisClient)

	// MinIO is optional; without it image uploads answer 503.
	var minioSvc services.MinioService
	if cfg.MinioEnabled() {
		minioSvc, err = services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MinIO service")
		}
		if err := minioSvc.EnsureBucketExists(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.MinioBucket).Msg("Failed to ensure MinIO bucket")
		}
	} else {
		log.Info().Msg("MinIO not configured, product image uploads disabled")
	}

	// Notifications
	var notifier services.NotificationService
	if cfg.SMTPEnabled() {
		mailClient, err := services.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create SMTP client")
		}
		notifier = services.NewSMTPNotificationService(mailClient, cfg.SMTPFrom)
	} else {
		log.Info().Msg("SMTP not configured, order notifications go to the log")
		notifier = services.NewLogNotificationService()
	}

	// Order events
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic))
	} else {
		publisher = events.NewNoopPublisher()
	}

	// Create repositories
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)

	// Create services
	productSvc := services.NewProductService(productRepo, minioSvc, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo, productRepo, notifier, publisher)
	cartSvc := services.NewCartService(cacheSvc, productRepo, orderSvc)
	reservationSvc := services.NewReservationService(tableRepo, reservationRepo)
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	analyticsSvc := analytics.NewService(orderRepo, cacheSvc)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
		}
	}

	scheduler, err := background.NewJobScheduler(analyticsSvc, productSvc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create job scheduler")
	}
	scheduler.Start()

	// Create handlers
	menuHandlers := handlers.NewMenuHandlers(productSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	cartHandlers := handlers.NewCartHandlers(cartSvc)
	reservationHandlers := handlers.NewReservationHandlers(reservationSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, scheduler, version)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.RequestLogger())
	e.Use(echoMiddleware.BodyLimit("10M"))

	// Public routes
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", middleware.APIVersion("v1"))

	v1.GET("/menu", menuHandlers.ListMenu)
	v1.GET("/menu/:id", menuHandlers.GetMenuItem)

	checkoutLimit := middleware.RateLimit(cfg.CheckoutRateLimit, 5)
	v1.POST("/orders", orderHandlers.PlaceOrder, checkoutLimit)

	v1.POST("/carts", cartHandlers.CreateCart)
	v1.GET("/carts/:id", cartHandlers.GetCart)
	v1.DELETE("/carts/:id", cartHandlers.DeleteCart)
	v1.POST("/carts/:id/items", cartHandlers.AddItem)
	v1.PUT("/carts/:id/items/:product_id", cartHandlers.SetItemQuantity)
	v1.DELETE("/carts/:id/items/:product_id", cartHandlers.RemoveItem)
	v1.POST("/carts/:id/checkout", cartHandlers.Checkout, checkoutLimit)

	jwtAuth := middleware.JWTMiddleware(cfg.JWTSecret, authSvc)

	v1.POST("/auth/login", authHandlers.Login, middleware.RateLimit(1, 5))
	v1.POST("/auth/refresh", authHandlers.RefreshToken)
	v1.POST("/auth/logout", authHandlers.Logout, jwtAuth)

	// Admin routes
	admin := v1.Group("/admin", jwtAuth, middleware.RequireAdmin(), middleware.AdminAudit())

	admin.GET("/products", productHandlers.ListProducts)
	admin.POST("/products", productHandlers.CreateProduct)
	admin.GET("/products/:id", productHandlers.GetProduct)
	admin.PUT("/products/:id", productHandlers.UpdateProduct)
	admin.DELETE("/products/:id", productHandlers.DeleteProduct)
	admin.PATCH("/products/:id/availability", productHandlers.SetAvailability)
	admin.POST("/products/:id/image", productHandlers.UploadImage)

	admin.GET("/orders", orderHandlers.ListOrders)
	admin.GET("/orders/:id", orderHandlers.GetOrder)
	admin.PATCH("/orders/:id/status", orderHandlers.UpdateOrderStatus)

	admin.GET("/tables", reservationHandlers.ListTables)

	admin.POST("/reservations", reservationHandlers.CreateReservation)
	admin.GET("/reservations", reservationHandlers.ListReservations)
	admin.GET("/reservations/availability", reservationHandlers.Availability)
	admin.GET("/reservations/:id", reservationHandlers.GetReservation)
	admin.DELETE("/reservations/:id", reservationHandlers.CancelReservation)
	admin.DELETE("/reservations", reservationHandlers.CancelBySlot)

	admin.GET("/dashboard", dashboardHandlers.GetDashboard)

	// Start server
	go func() {
		log.Info().Str("version", version).Str("port", cfg.Port).Msg("Aconchego server starting")
		if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	if err := scheduler.Stop(); err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown failed")
	}
	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("Event publisher close failed")
	}
}
