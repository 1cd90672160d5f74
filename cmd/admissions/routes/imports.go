package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/handlers"
)

// RegisterImportRoutes registers the import endpoint
func RegisterImportRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewImportHandler(c.ImportService, c.Components.Logger)

	e.POST("/api/v1/imports", h.ImportApplicants) // POST /api/v1/imports
}
