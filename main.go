package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nearfix/config"
	"nearfix/cron"
	"nearfix/database"
	bookingRepoPkg "nearfix/database/repository/booking"
	messageRepoPkg "nearfix/database/repository/message"
	providerRepoPkg "nearfix/database/repository/provider"
	requirementRepoPkg "nearfix/database/repository/requirement"
	reviewRepoPkg "nearfix/database/repository/review"
	userRepoPkg "nearfix/database/repository/user"
	"nearfix/handlers"
	"nearfix/middleware"
	"nearfix/realtime"
	"nearfix/routes"
	"nearfix/services/booking"
	"nearfix/services/chat"
	"nearfix/services/notification"
	"nearfix/services/tasks"
	"nearfix/services/user"
	"nearfix/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	requirementRepo := requirementRepoPkg.NewMongoRequirementRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// live event fan-out.
	hub := realtime.NewHub(logger)

	// services.
	notifier := &notification.DefaultNotificationService{Users: userRepo}
	reminderQueue := &tasks.ReminderQueue{Client: cron.NewAsynqClient(), Logger: logger}

	bookingService := &booking.DefaultBookingService{
		Bookings:     bookingRepo,
		Messages:     messageRepo,
		Providers:    providerRepo,
		Users:        userRepo,
		Requirements: requirementRepo,
		Reviews:      reviewRepo,
		Hub:          hub,
		Notifier:     notifier,
		Reminders:    reminderQueue,
		Logger:       logger,
	}
	chatService := &chat.DefaultChatService{
		Messages:  messageRepo,
		Bookings:  bookingRepo,
		Providers: providerRepo,
		Users:     userRepo,
		Booking:   bookingService,
		Hub:       hub,
		Notifier:  notifier,
		Cache:     utils.GetCacheClient(),
		Logger:    logger,
	}
	userService := &user.DefaultUserService{Users: userRepo}

	// background reminder worker.
	cron.InitReminderWorker(notifier)

	handlerBundle := &handlers.HandlerBundle{
		Booking:      bookingService,
		Chat:         chatService,
		Users:        userService,
		BookingRepo:  bookingRepo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
		Hub:          hub,
		Logger:       logger,
	}
	routes.RegisterRoutes(router, handlerBundle)

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
