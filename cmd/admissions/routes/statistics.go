package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/handlers"
)

// RegisterStatisticsRoutes registers statistics and history routes
func RegisterStatisticsRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewStatisticsHandler(c.StatisticsService, c.HistoryService, c.Components.Logger)

	stats := e.Group("/api/v1/statistics")
	{
		stats.GET("", h.GetStatistics)          // GET /api/v1/statistics
		stats.GET("/overlaps", h.GetOverlaps)   // GET /api/v1/statistics/overlaps
	}

	e.GET("/api/v1/history", h.GetHistory) // GET /api/v1/history
}
