package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/handlers"
)

// RegisterAdminRoutes registers maintenance routes
func RegisterAdminRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAdminHandler(c.AdminService, c.Components.Logger)

	e.POST("/api/v1/admin/clear", h.ClearDatabase) // POST /api/v1/admin/clear
}
