package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"academy_portal/internal/cache"
	"academy_portal/internal/config"
	"academy_portal/internal/handler"
	"academy_portal/internal/lib/sl"
	"academy_portal/internal/middleware"
	"academy_portal/internal/notify"
	"academy_portal/internal/repository"
	"academy_portal/internal/service"
	"academy_portal/internal/utils"
	"academy_portal/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	logger := sl.NewLogger(os.Stdout, cfg.LogLevel)
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	if err := validate.RegisterGinBindings(); err != nil {
		logger.Error("failed to register validators", sl.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
		logger.Error("failed to auto-migrate database", sl.Err(err))
		os.Exit(1)
	}

	// --- Optional infrastructure ---
	var catalogCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, catalog cache disabled", sl.Err(err))
		} else {
			defer redisCache.Close()
			catalogCache = redisCache
			logger.Info("catalog cache enabled", slog.String("addr", cfg.Redis.Addr), slog.Duration("ttl", cfg.Redis.CacheTTL))
		}
	}

	var sms notify.SMSSender = notify.NewLogSender(logger)
	if cfg.AMQP.URL != "" {
		queueSender, closeQueue, err := notify.DialQueue(cfg.AMQP.URL, cfg.AMQP.SMSQueue, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, SMS stays on the logging stub", sl.Err(err))
		} else {
			defer func() {
				if err := closeQueue(); err != nil {
					logger.Warn("failed to close rabbitmq connection", sl.Err(err))
				}
			}()
			sms = queueSender
			logger.Info("SMS delivery via queue", slog.String("queue", cfg.AMQP.SMSQueue))
		}
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWT.SecretKey, cfg.JWT.ExpirationHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	adminRepo := repository.NewAdminRepository(dbPool)
	trainingRepo := repository.NewTrainingRepository(dbPool)
	serviceRepo := repository.NewServiceRepository(dbPool)
	subscriberRepo := repository.NewSubscriberRepository(dbPool)

	// --- Initialize Services ---
	catalogService := service.NewCatalogService(trainingRepo, serviceRepo, catalogCache, cfg.Redis.CacheTTL, logger)
	authService := service.NewAuthService(userRepo, adminRepo, jwtUtil, sms, logger, cfg.InitialAdminEmail)
	userService := service.NewUserService(userRepo, adminRepo)
	adminService := service.NewAdminService(adminRepo, userRepo, sms, logger)
	trainingService := service.NewTrainingService(trainingRepo, catalogService)
	offeringService := service.NewOfferingService(serviceRepo, catalogService)
	subscriberService := service.NewSubscriberService(subscriberRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)
	trainingHandler := handler.NewTrainingHandler(trainingService, logger)
	offeringHandler := handler.NewOfferingHandler(offeringService, logger)
	subscriberHandler := handler.NewSubscriberHandler(subscriberService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)

	// --- Setup Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), metrics.Handler())

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	optionalAuthMW := middleware.OptionalAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware(userRepo, logger)
	staffRoleMW := middleware.StaffMiddleware(userRepo, logger)
	subscribeLimitMW := middleware.RateLimit(
		rate.NewLimiter(rate.Limit(cfg.Server.SubscribeRate), cfg.Server.SubscribeBurst), logger)

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	adminHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	trainingHandler.RegisterTrainingRoutes(apiGroup, optionalAuthMW, jwtAuthMW, staffRoleMW)
	offeringHandler.RegisterOfferingRoutes(apiGroup, optionalAuthMW, jwtAuthMW, staffRoleMW)
	subscriberHandler.RegisterSubscriberRoutes(apiGroup, subscribeLimitMW, jwtAuthMW, adminRoleMW)
	catalogHandler.RegisterCatalogRoutes(apiGroup)

	router.GET("/health", handler.Health(dbPool))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", sl.Err(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", sl.Err(err))
	}

	logger.Info("server exiting")
}
