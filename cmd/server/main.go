package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pluglr/auth-service/internal/auth"
	"github.com/pluglr/auth-service/internal/config"
	"github.com/pluglr/auth-service/internal/db"
	"github.com/pluglr/auth-service/internal/handlers"
	"github.com/pluglr/auth-service/internal/middleware"
	"github.com/pluglr/auth-service/internal/repository"
	"github.com/pluglr/auth-service/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("✓ Configuration loaded")

	// 2. Initialize database connection and schema
	ctx := context.Background()
	if err := db.Migrate(ctx, cfg.DBUrl); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer pool.Close()

	// 3. Initialize layers
	userRepo := repository.NewUserRepository(pool)
	verificationRepo := repository.NewVerificationRepository(pool)

	tokenService := auth.NewTokenService(cfg.JWTSecret)
	emailService := service.NewEmailService(service.EmailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		Timeout:  cfg.EmailTimeout,
	})

	otpService := service.NewOTPService(verificationRepo)
	authService := service.NewAuthService(userRepo, otpService, tokenService, emailService)
	userService := service.NewUserService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	healthHandler := handlers.NewHealthHandler(pool)

	// 4. Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())

	healthHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, middleware.RequireAuth(tokenService, userRepo))

	// 5. Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("🚀 Server starting on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("✓ Server exited")
}
