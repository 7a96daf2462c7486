package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/cron"
	"servicehub/database"
	"servicehub/database/repository"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/routes"
	"servicehub/services/booking"
	"servicehub/services/discovery"
	"servicehub/services/lock"
	"servicehub/services/notification"
	"servicehub/services/payment"
	"servicehub/services/provider"
	"servicehub/services/review"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// stores bundles the repositories the services run on.
type stores struct {
	providers repository.ProviderRepository
	bookings  repository.BookingRepository
	reviews   repository.ReviewRepository
	pinger    utils.Pinger
}

func openStores(logger *zap.Logger) (stores, error) {
	if config.UseMemoryStore() {
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{
			providers: mem.Providers(),
			bookings:  mem.Bookings(),
			reviews:   mem.Reviews(),
			pinger:    mem,
		}, nil
	}

	if _, err := database.InitDB(); err != nil {
		return stores{}, err
	}
	db := database.GetDatabase()
	provRepo, err := repository.NewMongoProviderRepo(db)
	if err != nil {
		return stores{}, err
	}
	bookRepo, err := repository.NewMongoBookingRepo(db)
	if err != nil {
		return stores{}, err
	}
	revRepo, err := repository.NewMongoReviewRepo(db)
	if err != nil {
		return stores{}, err
	}
	return stores{
		providers: provRepo,
		bookings:  bookRepo,
		reviews:   revRepo,
		pinger:    utils.PingerFunc(database.Ping),
	}, nil
}

func newLocker(logger *zap.Logger, health map[string]utils.Pinger) (lock.Locker, error) {
	cfg := config.AppConfig
	if cfg.LockDriver == "local" {
		logger.Warn("Using in-process locks; run a single instance only")
		return lock.NewKeyedMutex(cfg.LockWait), nil
	}
	client, err := utils.InitLockClient()
	if err != nil {
		return nil, err
	}
	health["redis"] = utils.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait, cfg.LockRetry, logger), nil
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	cfg := config.AppConfig
	if cfg.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET is required")
	}

	// repositories.
	st, err := openStores(logger)
	if err != nil {
		logger.Fatal("main: failed to open store", zap.Error(err))
	}
	health := map[string]utils.Pinger{"store": st.pinger}

	locker, err := newLocker(logger, health)
	if err != nil {
		logger.Fatal("main: failed to initialize locks", zap.Error(err))
	}

	gateway := payment.NewGateway(payment.Config{
		StripeSecretKey: cfg.StripeSecretKey,
		Timeout:         cfg.PaymentTimeout,
	}, logger)

	// notifications.
	var publisher notification.Publisher = notification.NoopPublisher{}
	var worker *asynq.Server
	if cfg.NotificationsEnabled {
		queueClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		})
		defer queueClient.Close()
		publisher = notification.NewAsynqPublisher(queueClient, logger)
		worker = cron.InitNotificationWorker(notification.NewLogNotificationService(logger), logger)
	} else {
		logger.Info("Notifications disabled")
	}

	// services.
	finder := discovery.NewService(st.providers, discovery.Config{
		DefaultRadiusMeters: cfg.DefaultRadiusMeters,
		MaxResults:          cfg.DiscoveryMaxResults,
	}, logger)
	providerService, err := provider.NewDefaultProviderService(st.providers, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize provider service", zap.Error(err))
	}
	bookingManager := booking.NewManager(st.bookings, st.providers, gateway, locker, publisher,
		booking.Config{Currency: cfg.PaymentCurrency}, logger)
	aggregator := review.NewAggregator(st.reviews, st.providers, locker, publisher, logger)

	providerHandler := handlers.NewProviderHandler(finder, providerService)
	adminHandler := handlers.NewAdminHandler(providerService)
	bookingHandler := handlers.NewBookingHandler(bookingManager)
	reviewHandler := handlers.NewReviewHandler(aggregator)

	handlerBundle := &handlers.HandlerBundle{
		JWTSecret:     cfg.JWTSecret,
		HealthHandler: handlers.HealthHandler,

		NearbyProvidersHandler:  providerHandler.NearbyProvidersHandler,
		RequestProviderHandler:  providerHandler.RequestProviderHandler,
		PendingProvidersHandler: adminHandler.PendingProvidersHandler,
		SetApprovalHandler:      adminHandler.SetApprovalHandler,

		CreateBookingHandler:   bookingHandler.CreateBookingHandler,
		PayVisitChargeHandler:  bookingHandler.PayVisitChargeHandler,
		CompleteBookingHandler: bookingHandler.CompleteBookingHandler,
		CancelBookingHandler:   bookingHandler.CancelBookingHandler,
		MyBookingsHandler:      bookingHandler.MyBookingsHandler,

		AddReviewHandler:       reviewHandler.AddReviewHandler,
		ProviderReviewsHandler: reviewHandler.ProviderReviewsHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, health)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB client", zap.Error(err))
	}
	if utils.LockClient != nil {
		_ = utils.LockClient.Close()
	}

	logger.Info("main: server stopped gracefully")
}
