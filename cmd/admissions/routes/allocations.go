package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/handlers"
)

// RegisterAllocationRoutes registers allocation trigger and status routes
func RegisterAllocationRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAllocationHandler(c.Scheduler, c.Components.Logger)

	allocations := e.Group("/api/v1/allocations")
	{
		allocations.POST("", h.TriggerAllocation)        // POST /api/v1/allocations
		allocations.GET("/status", h.GetAllocationStatus) // GET /api/v1/allocations/status
	}
}
