package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

// ImportHandler handles applicant batch imports
type ImportHandler struct {
	importer *service.ImportService
	log      *logger.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importer *service.ImportService, log *logger.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		log:      log,
	}
}

// ImportApplicants reconciles the applicant set with an uploaded batch
// and triggers a detached allocation run for the report date
// POST /api/v1/imports
func (h *ImportHandler) ImportApplicants(c echo.Context) error {
	var req models.ImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	if req.Records == nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "records array is required",
		})
	}

	summary, err := h.importer.Import(c.Request().Context(), req.Date, req.Records)
	if err != nil {
		h.log.Error("import failed", "error", err)
		return c.JSON(http.StatusInternalServerError, models.ImportResponse{
			Status:  "error",
			Message: "failed to reconcile applicants",
		})
	}

	return c.JSON(http.StatusOK, models.ImportResponse{
		Status:  "success",
		Message: fmt.Sprintf("processed %d records, skipped %d", summary.Processed, summary.Skipped),
		Summary: summary,
	})
}
