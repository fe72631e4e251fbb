// File: servana/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servana/config"
	"servana/cron"
	"servana/database"
	bookingRepo "servana/database/repository/booking"
	providerRepo "servana/database/repository/provider"
	"servana/handlers"
	"servana/middleware"
	"servana/routes"
	"servana/services/events"
	"servana/services/notification"
	"servana/services/scheduling"
	"servana/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	if err := provRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create provider indexes: %v", err)
	}
	if err := bkRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}

	// Public provider reads go through the cache; admission reads stay fresh.
	cachedProvRepo := providerRepo.NewCachedProviderRepo(provRepo, utils.GetCacheClient(), 5*time.Minute)

	// domain event queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	publisher := events.NewAsynqPublisher(asynqClient)

	// per-provider admission lock.
	locker := &scheduling.RedisProviderLocker{
		Client:      utils.GetLockClient(),
		TTL:         time.Duration(config.AppConfig.LockTTLMillis) * time.Millisecond,
		MaxAttempts: config.AppConfig.LockMaxAttempts,
		RetryDelay:  time.Duration(config.AppConfig.LockRetryMillis) * time.Millisecond,
	}

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Providers: provRepo,
		Bookings:  bkRepo,
		Locker:    locker,
		Events:    publisher,
	}
	notificationService := &notification.LogNotificationService{}

	// background worker: event dispatch + completion sweep.
	cron.InitWorker(notificationService, schedulingService)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(schedulingService, logger)
	providerHandler := handlers.NewProviderHandler(cachedProvRepo)

	handlerBundle := &routes.HandlerBundle{
		Booking:  bookingHandler,
		Provider: providerHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
