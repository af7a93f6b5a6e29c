package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"predictions-api/config"
	"predictions-api/db"
	"predictions-api/handler"
	"predictions-api/logger"
	"predictions-api/repository"
	"predictions-api/router"
	"predictions-api/service"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(db.URL()); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	otpRepo := repository.NewOtpRepository(database)
	leagueRepo := repository.NewLeagueRepository(database)

	tokenService := service.NewTokenService(config.AppConfig.JWT.SecretKey)
	emailService := service.NewEmailService()
	authService := service.NewAuthService(userRepo, otpRepo, tokenService, emailService)
	leagueService := service.NewLeagueService(leagueRepo, userRepo, redisClient)
	profileService := service.NewProfileService(userRepo, emailService)

	authHandler := handler.NewAuthHandler(authService, tokenService)
	leagueHandler := handler.NewLeagueHandler(leagueService)
	profileHandler := handler.NewProfileHandler(profileService)
	authMiddleware := handler.NewAuthMiddleware(tokenService, userRepo)

	r := router.NewRouter(authHandler, leagueHandler, profileHandler, authMiddleware)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
