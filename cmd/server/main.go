package main

import (
	"context"                             // Shutdown and startup pings
	"net/http"                            // HTTP server
	"os"                                  // Signals
	"os/signal"                           // Signal notification
	"reservation_system/internal/api"     // Custom package for API handlers
	"reservation_system/internal/config"  // Custom package for configuration
	"reservation_system/internal/db"      // Custom package for persistence
	"reservation_system/internal/graph"   // GraphQL schema
	"reservation_system/internal/logger"  // Operational and audit loggers
	"reservation_system/internal/service" // Auth and reservation services
	"reservation_system/internal/utils"   // Hashing, tokens, login limiter
	"syscall"                             // Termination signals
	"time"                                // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	logs := logger.New(cfg)    // Setup loggers
	log := logs.App

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database, unreachable store is fatal
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx, gdb); err != nil {
		log.Fatalf("failed to reach DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	checks := map[string]api.HealthCheck{
		"db": func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}

	// Setup Redis backed login limiter when configured
	var limiter service.AttemptLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		limiter = utils.NewRedisLimiter(redisClient, cfg.LoginMaxTries, cfg.LoginLockWindow)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		log.Warn("REDIS_ADDR not set, login attempt limiting disabled")
	}

	users := db.NewUserRepository(gdb)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	auth := service.NewAuthService(users, utils.NewHasher(utils.PasswordCost), tokens, limiter, log, logs.Audit)
	reservations := service.NewReservationService(db.NewReservationRepository(gdb), service.Policy{
		RequireStaffForStatusChange: cfg.StaffOnlyStatus,
		EnforceTransitions:          cfg.StrictStatus,
	}, log)

	schema, err := graph.NewSchema(reservations)
	if err != nil {
		log.Fatalf("failed to build GraphQL schema: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(api.RouterConfig{
		Auth:           auth,
		Users:          users,
		Tokens:         tokens,
		Schema:         schema,
		Checks:         checks,
		Log:            log,
		Audit:          logs.Audit,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Infof("Server running on %s, GraphQL endpoint /graphql", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}
