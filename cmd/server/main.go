package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isiboard/internal/api"
	"isiboard/internal/api/middleware"
	"isiboard/internal/app/refresh"
	"isiboard/internal/app/service"
	"isiboard/internal/app/view"
	"isiboard/internal/common/security"
	"isiboard/internal/domain/repository"
	"isiboard/internal/metrics"
	"isiboard/internal/platform/config"
	"isiboard/internal/platform/database"
	"isiboard/internal/platform/logging"
	"isiboard/internal/platform/statestore"
	"isiboard/internal/upstream"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	logger := logging.New(config.AppConfig.LogLevel, config.AppConfig.PrettyLogs)

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis (view state store)
	statestore.ConnectRedis()
	defer statestore.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Metrics & Upstream Client
	m := metrics.New()
	middleware.Metrics = m
	client := upstream.New(config.AppConfig.UpstreamBaseURL, config.AppConfig.UpstreamTimeout, logger, m)

	// 6. Initialize Resources & View Controller
	resources := service.NewResources(client, logger, m)
	store := statestore.NewRedisStore(statestore.RDB)
	controller := view.NewController(store, logger, m)

	// 7. Initialize Repositories & Services
	userRepo := repository.NewPgUserRepository(database.DB)

	authService := service.NewAuthService(userRepo)
	challengeService := service.NewChallengeService(resources, client, controller)
	quizService := service.NewQuizService(resources, m)
	leaderboardService := service.NewLeaderboardService(resources)
	filesService := service.NewFilesService(resources, m)
	dashboardService := service.NewDashboardService(resources, controller, userRepo, challengeService, quizService, leaderboardService, filesService)

	// 8. Start Background Refresher
	refresher := refresh.New(resources, config.AppConfig.RefreshInterval, logger)
	if err := refresher.Start(); err != nil {
		log.Fatalf("Could not start background refresher: %v", err)
	}
	defer refresher.Stop()
	fmt.Println("Background refresher started.")

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, dashboardService, challengeService, quizService, leaderboardService, filesService, controller)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
