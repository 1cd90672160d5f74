package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/repository"
	"github.com/unistat/admissions/cmd/admissions/routes"
	"github.com/unistat/admissions/common/bootstrap"
	"github.com/unistat/admissions/common/db"
	"github.com/unistat/admissions/common/middleware"
	"github.com/unistat/admissions/common/ratelimit"
	"github.com/unistat/admissions/common/server"
)

func main() {
	ctx := context.Background()

	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	// Bootstrap common components (config, logger, DB, cache, telemetry)
	components, err := bootstrap.Setup(ctx, "admissions",
		bootstrap.WithDBInitHook(func(database *db.DB) error {
			return repository.InitSchema(ctx, database)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap admissions: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho()
	setupMiddleware(e, components)
	setupHealthCheck(e, serviceContainer)
	registerRoutes(e, serviceContainer)

	startServer(e, components, serviceContainer)
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, components *bootstrap.Components) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	// Write throttling needs the shared counter in Redis; without it
	// the limiter would reset on every restart, so it stays off
	if components.Redis != nil && components.Config.Service.WriteRateLimit > 0 {
		limiter := ratelimit.NewRateLimiter(components.Redis, components.Logger)
		e.Use(middleware.WriteRateLimitMiddleware(limiter, int64(components.Config.Service.WriteRateLimit)))
	}
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, c *container.Container) {
	e.GET("/health", func(ec echo.Context) error {
		if err := c.Components.Health(ec.Request().Context()); err != nil {
			return ec.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return ec.JSON(200, map[string]string{
			"status":  "ok",
			"service": "admissions",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterApplicantRoutes(e, serviceContainer)
	routes.RegisterStatisticsRoutes(e, serviceContainer)
	routes.RegisterImportRoutes(e, serviceContainer)
	routes.RegisterAllocationRoutes(e, serviceContainer)
	routes.RegisterAdminRoutes(e, serviceContainer)
}

// startServer runs the HTTP server until a shutdown signal arrives,
// then lets any in-flight allocation run finish before exiting
func startServer(e *echo.Echo, components *bootstrap.Components, serviceContainer *container.Container) {
	srv := server.New(
		"admissions",
		components.Config.Service.Port,
		e,
		components.Logger,
		serviceContainer.Scheduler.Wait,
	)

	if err := srv.Start(); err != nil {
		components.Logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
