package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/container"
	"github.com/unistat/admissions/cmd/admissions/handlers"
)

// RegisterApplicantRoutes registers applicant listing routes
func RegisterApplicantRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewApplicantHandler(c.ApplicantService, c.Components.Logger)

	e.GET("/api/v1/applicants", h.ListApplicants) // GET /api/v1/applicants?page=1&limit=50
}
