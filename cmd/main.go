package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/denis-rim/node-auth/internal/config"
	"github.com/denis-rim/node-auth/internal/database"
	"github.com/denis-rim/node-auth/internal/handler"
	"github.com/denis-rim/node-auth/internal/handler/middleware"
	"github.com/denis-rim/node-auth/internal/repository/postgres"
	redisrepo "github.com/denis-rim/node-auth/internal/repository/redis"
	"github.com/denis-rim/node-auth/internal/service"
	"github.com/denis-rim/node-auth/pkg/email"
	"github.com/denis-rim/node-auth/pkg/jwt"
	"github.com/denis-rim/node-auth/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)

	// Initialize token service with the shared signing secret
	tokenService := jwt.NewTokenService(cfg.Auth.JWTSignature)

	// Initialize email service
	var emailService email.EmailService
	if cfg.Email.Enabled {
		emailService, err = email.NewResendEmailService(&email.EmailConfig{
			APIKey:    cfg.Email.APIKey,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize email service: %v", err)
			log.Println("Email functionality will be disabled")
			emailService = nil
		} else {
			log.Println("✓ Email service initialized (Resend)")
		}
	} else {
		log.Println("ℹ Email service disabled (set EMAIL_ENABLED=true to enable)")
	}

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo)
	authService := service.NewAuthService(userRepo, sessionService, tokenService, cfg.Auth.BcryptCost)
	resetService := service.NewResetService(userRepo, cfg.Auth.JWTSignature, cfg.Auth.RootDomain, cfg.Auth.ResetTokenTTL)
	verifyService := service.NewVerifyService(userRepo, cfg.Auth.JWTSignature, cfg.Auth.RootDomain)
	resolver := service.NewResolver(userRepo, sessionService, tokenService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, verifyService, emailService, validate, cfg.Auth)
	passwordHandler := handler.NewPasswordHandler(authService, resetService, userRepo, emailService, validate)
	userHandler := handler.NewUserHandler(verifyService, validate)
	healthHandler := handler.NewHealthHandler()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Node Auth v1.0",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware(cfg.Auth.RootDomain))

	// Setup routes
	resolveUser := middleware.ResolveUser(resolver, cfg.Auth.RootDomain, cfg.Auth.RefreshCookieTTL)
	handler.SetupRoutes(app, authHandler, passwordHandler, userHandler, healthHandler, resolveUser)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func initRedis(cfg *config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
