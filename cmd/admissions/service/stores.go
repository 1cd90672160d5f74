package service

import (
	"context"

	"github.com/unistat/admissions/cmd/admissions/models"
)

// ApplicantStore is the repository surface the services need. The engine
// side of it matters most: FetchAll must return the complete set and
// ApplyPlan must land atomically.
type ApplicantStore interface {
	FetchAll(ctx context.Context) ([]models.Applicant, error)
	List(ctx context.Context, filter models.ApplicantFilter, limit, offset int) ([]models.Applicant, error)
	Count(ctx context.Context, filter models.ApplicantFilter) (int, error)
	Reconcile(ctx context.Context, batch []models.NewApplicant) error
	ApplyPlan(ctx context.Context, assignments map[int64]string) error
	Clear(ctx context.Context) error
}

// HistoryStore persists and reads the dated snapshot time series
type HistoryStore interface {
	Upsert(ctx context.Context, date, programCode string, passingScore, placesFilled int) error
	ListSeries(ctx context.Context) ([]models.HistoryRecord, error)
}
