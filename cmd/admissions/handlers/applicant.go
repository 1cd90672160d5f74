package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

// ApplicantHandler handles applicant listing requests
type ApplicantHandler struct {
	applicants *service.ApplicantService
	log        *logger.Logger
}

// NewApplicantHandler creates a new applicant handler
func NewApplicantHandler(applicants *service.ApplicantService, log *logger.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		applicants: applicants,
		log:        log,
	}
}

// ListApplicants lists applicants with pagination and filters
// GET /api/v1/applicants?page=1&limit=50&search=&agreed=&program=&min_score=
func (h *ApplicantHandler) ListApplicants(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	filter := models.ApplicantFilter{
		Search:  c.QueryParam("search"),
		Program: c.QueryParam("program"),
	}

	if raw := c.QueryParam("agreed"); raw != "" {
		agreed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error": "agreed must be a boolean",
			})
		}
		filter.Agreed = &agreed
	}

	if raw := c.QueryParam("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error": "min_score must be an integer",
			})
		}
		filter.MinScore = &minScore
	}

	resp, err := h.applicants.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		h.log.Error("failed to list applicants", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to list applicants",
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func queryInt(c echo.Context, name string, defaultValue int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultValue
}
