package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

// AdminHandler handles maintenance endpoints
type AdminHandler struct {
	admin *service.AdminService
	log   *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		log:   log,
	}
}

// ClearDatabase wipes applicants and history
// POST /api/v1/admin/clear
func (h *AdminHandler) ClearDatabase(c echo.Context) error {
	if err := h.admin.Clear(c.Request().Context()); err != nil {
		h.log.Error("failed to clear database", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to clear database",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "cleared",
	})
}
