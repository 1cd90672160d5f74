package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// stubStore satisfies service.ApplicantStore for handler-level tests
type stubStore struct {
	applicants []models.Applicant
	reconciled [][]models.NewApplicant
}

func (s *stubStore) FetchAll(ctx context.Context) ([]models.Applicant, error) {
	return s.applicants, nil
}

func (s *stubStore) List(ctx context.Context, filter models.ApplicantFilter, limit, offset int) ([]models.Applicant, error) {
	return s.applicants, nil
}

func (s *stubStore) Count(ctx context.Context, filter models.ApplicantFilter) (int, error) {
	return len(s.applicants), nil
}

func (s *stubStore) Reconcile(ctx context.Context, batch []models.NewApplicant) error {
	s.reconciled = append(s.reconciled, batch)
	return nil
}

func (s *stubStore) ApplyPlan(ctx context.Context, assignments map[int64]string) error {
	return nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	return nil
}

type stubTrigger struct {
	dates []string
}

func (s *stubTrigger) Trigger(date string) {
	s.dates = append(s.dates, date)
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListApplicants_InvalidFilters(t *testing.T) {
	e := echo.New()
	svc := service.NewApplicantService(&stubStore{}, testLogger())
	e.GET("/api/v1/applicants", NewApplicantHandler(svc, testLogger()).ListApplicants)

	rec := doRequest(e, http.MethodGet, "/api/v1/applicants?agreed=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/applicants?min_score=high", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListApplicants_ReturnsPage(t *testing.T) {
	e := echo.New()
	store := &stubStore{applicants: []models.Applicant{
		{ID: 1, ExternalID: 101, FullName: "Ivanov Ivan", Agreed: true, TotalScore: 72},
	}}
	svc := service.NewApplicantService(store, testLogger())
	e.GET("/api/v1/applicants", NewApplicantHandler(svc, testLogger()).ListApplicants)

	rec := doRequest(e, http.MethodGet, "/api/v1/applicants", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ApplicantListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Ivanov Ivan", resp.Data[0].FullName)
	assert.Equal(t, 1, resp.Meta.TotalItems)
}

func TestTriggerAllocation_ValidatesDate(t *testing.T) {
	e := echo.New()
	scheduler := service.NewScheduler(func(ctx context.Context, date string) error { return nil }, testLogger())
	h := NewAllocationHandler(scheduler, testLogger())
	e.POST("/api/v1/allocations", h.TriggerAllocation)

	rec := doRequest(e, http.MethodPost, "/api/v1/allocations", `{"date":"July 1st"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/allocations", `{"date":"2025-07-01"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
	assert.Equal(t, "2025-07-01", resp["date"])
	scheduler.Wait()
}

func TestGetAllocationStatus_Idle(t *testing.T) {
	e := echo.New()
	scheduler := service.NewScheduler(func(ctx context.Context, date string) error { return nil }, testLogger())
	h := NewAllocationHandler(scheduler, testLogger())
	e.GET("/api/v1/allocations/status", h.GetAllocationStatus)

	rec := doRequest(e, http.MethodGet, "/api/v1/allocations/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status service.SchedulerStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, service.StateIdle, status.State)
}

func TestImportApplicants_RequiresRecords(t *testing.T) {
	e := echo.New()
	store := &stubStore{}
	trigger := &stubTrigger{}
	importer := service.NewImportService(store, trigger, nil, testLogger())
	e.POST("/api/v1/imports", NewImportHandler(importer, testLogger()).ImportApplicants)

	rec := doRequest(e, http.MethodPost, "/api/v1/imports", `{"date":"2025-07-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/imports", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportApplicants_Success(t *testing.T) {
	e := echo.New()
	store := &stubStore{}
	trigger := &stubTrigger{}
	importer := service.NewImportService(store, trigger, nil, testLogger())
	e.POST("/api/v1/imports", NewImportHandler(importer, testLogger()).ImportApplicants)

	body := `{"date":"2025-07-01","records":[
		{"external_id":101,"full_name":"Ivanov Ivan","math":72,"agreed":"да","priorities":"PM;IVT"},
		{"external_id":0,"full_name":"Broken","math":10,"agreed":"true","priorities":"PM"}
	]}`
	rec := doRequest(e, http.MethodPost, "/api/v1/imports", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, models.ImportSummary{Processed: 1, Skipped: 1}, resp.Summary)
	assert.Equal(t, []string{"2025-07-01"}, trigger.dates)
}
