package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

// StatisticsHandler handles statistics requests
type StatisticsHandler struct {
	statistics *service.StatisticsService
	history    *service.HistoryService
	log        *logger.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statistics *service.StatisticsService, history *service.HistoryService, log *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		statistics: statistics,
		history:    history,
		log:        log,
	}
}

// GetStatistics returns per-program statistics
// GET /api/v1/statistics
func (h *StatisticsHandler) GetStatistics(c echo.Context) error {
	stats, err := h.statistics.ProgramStats(c.Request().Context())
	if err != nil {
		h.log.Error("failed to compute statistics", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to compute statistics",
		})
	}

	return c.JSON(http.StatusOK, stats)
}

// GetOverlaps returns the preference-overlap counters
// GET /api/v1/statistics/overlaps
func (h *StatisticsHandler) GetOverlaps(c echo.Context) error {
	overlaps, err := h.statistics.Overlaps(c.Request().Context())
	if err != nil {
		h.log.Error("failed to compute overlaps", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to compute overlaps",
		})
	}

	return c.JSON(http.StatusOK, overlaps)
}

// GetHistory returns the snapshot time series grouped by program code
// GET /api/v1/history
func (h *StatisticsHandler) GetHistory(c echo.Context) error {
	series, err := h.history.Series(c.Request().Context())
	if err != nil {
		h.log.Error("failed to load history", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to load history",
		})
	}

	return c.JSON(http.StatusOK, series)
}
