package main

import (
	"context"                                // context package is needed for Redis operations
	"errors"                                 // Error comparison
	"net/http"                               // HTTP server
	"os"                                     // Signals
	"os/signal"                              // Graceful shutdown
	"restaurant_booking/internal/api"        // Custom package for HTTP handlers
	"restaurant_booking/internal/config"     // Custom package for configuration
	"restaurant_booking/internal/db"         // Database connection and migration
	"restaurant_booking/internal/middleware" // Custom package for middleware
	"restaurant_booking/internal/storage"    // Uploaded image storage
	"restaurant_booking/internal/store"      // Persistence
	"restaurant_booking/internal/utils"      // Cache
	"restaurant_booking/internal/web"        // Embedded templates
	"syscall"                                // Signal numbers
	"time"                                   // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database and create missing tables
	database, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if _, err := db.PromoteAdmins(database, cfg.AdminUsernames); err != nil {
		logrus.Fatalf("admin promotion failed: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to prepare uploads: %v", err)
	}
	templates, err := web.Templates()
	if err != nil {
		logrus.Fatalf("failed to parse templates: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &api.Handler{
		Store:         store.New(database),
		Cache:         utils.NewRedisCache(redisClient),
		Images:        images,
		Secret:        cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		CacheTTL:      cfg.CacheTTL,
		SecureCookies: cfg.IsProd,
		Location:      cfg.Location,
	}
	var limiter *middleware.RateLimiter
	if cfg.LoginRatePerMin > 0 {
		limiter = middleware.NewRateLimiter(cfg.LoginRatePerMin) // Zero disables throttling
	}
	router, err := api.NewRouter(h, api.RouterOptions{
		Templates:      templates,
		LoginLimiter:   limiter,
		MaxUploadBytes: cfg.MaxUploadBytes,
		TrustedProxies: []string{"127.0.0.1"},
		Logger:         true,
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
	_ = redisClient.Close()
}
