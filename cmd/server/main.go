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

	"taskreg/internal/api"
	"taskreg/internal/app/service"
	"taskreg/internal/domain/repository"
	"taskreg/internal/platform/cache"
	"taskreg/internal/platform/config"
	"taskreg/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 3. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)
	typeRepo := repository.NewPgTaskTypeRepository(database.DB)
	logRepo := repository.NewPgTaskLogRepository(database.DB)
	sessionRepo := repository.NewRedisSessionRepository(cache.RDB, config.AppConfig.SessionKeyPrefix)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, config.AppConfig.SessionTTL)
	taskService := service.NewTaskService(taskRepo, userRepo, typeRepo, logRepo)
	typeService := service.NewTaskTypeService(typeRepo, taskRepo)
	userService := service.NewUserService(userRepo, taskRepo, config.AppConfig.BcryptCost, config.AppConfig.DefaultUserPassword)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(authService, sessionService, taskService, typeService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
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
