package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

// AllocationHandler exposes manual allocation triggers and run status
type AllocationHandler struct {
	scheduler *service.Scheduler
	log       *logger.Logger
}

// NewAllocationHandler creates a new allocation handler
func NewAllocationHandler(scheduler *service.Scheduler, log *logger.Logger) *AllocationHandler {
	return &AllocationHandler{
		scheduler: scheduler,
		log:       log,
	}
}

// TriggerAllocation enqueues an allocation run for the given report date
// POST /api/v1/allocations
func (h *AllocationHandler) TriggerAllocation(c echo.Context) error {
	var req struct {
		Date string `json:"date"`
	}
	// An empty body means "run for today"
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "date must be YYYY-MM-DD",
		})
	}

	h.scheduler.Trigger(date)
	h.log.Info("allocation run requested", "date", date)

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"status": "accepted",
		"date":   date,
	})
}

// GetAllocationStatus reports the scheduler state
// GET /api/v1/allocations/status
func (h *AllocationHandler) GetAllocationStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.Status())
}
