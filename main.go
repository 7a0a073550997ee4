// File: tablevoice/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablevoice/config"
	"tablevoice/cron"
	"tablevoice/database"
	bookingRepoPkg "tablevoice/database/repository/booking"
	"tablevoice/handlers"
	"tablevoice/middleware"
	"tablevoice/routes"
	"tablevoice/services/dialogue"
	"tablevoice/services/forecast"
	"tablevoice/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	forecastClient := forecast.NewOpenWeatherClient(
		config.AppConfig.WeatherBaseURL,
		config.AppConfig.WeatherAPIKey,
		config.AppConfig.DefaultCity,
		utils.GetCacheClient(),
	)

	sessionStore := dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)
	reminderScheduler := cron.NewReminderScheduler()

	dialogueService := &dialogue.DefaultDialogueService{
		Generator: dialogue.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		Forecast:  forecastClient,
		Repo:      bookingRepo,
		Sessions:  sessionStore,
		Reminders: reminderScheduler,
		Logger:    logger,
	}

	assistantHandler := handlers.NewAssistantHandler(dialogueService)
	bookingHandler := handlers.NewBookingHandler(bookingRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		TurnHandler:       assistantHandler.TurnHandler,
		TranscribeHandler: handlers.TranscribeHandler,

		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		DeleteBookingHandler: bookingHandler.DeleteBookingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker(logger)

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
