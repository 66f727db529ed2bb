package main

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/metrics"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/router"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/OryemaStephen/alx-project-nexus-api/pkg/config"
	"github.com/OryemaStephen/alx-project-nexus-api/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.New(cfg.Env)

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Task dispatcher (Redis broker); enqueue failures are logged, never fatal
	dispatcher := tasks.NewClient(cfg.RedisAddr, logger)
	defer dispatcher.Close()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Create Echo instance
	e := echo.New()
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, router.Dependencies{
		DB:         db,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Metrics:    metrics.New(prometheus.DefaultRegisterer),
		Log:        logger,
	}); err != nil {
		logger.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
