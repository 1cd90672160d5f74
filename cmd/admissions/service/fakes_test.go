package service

import (
	"context"
	"sync"

	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// fakeApplicantStore is an in-memory ApplicantStore for service tests
type fakeApplicantStore struct {
	mu sync.Mutex

	applicants []models.Applicant

	reconciled [][]models.NewApplicant
	applied    []map[int64]string
	cleared    bool

	fetchErr     error
	reconcileErr error
	applyErr     error
}

func (f *fakeApplicantStore) FetchAll(ctx context.Context) ([]models.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.Applicant, len(f.applicants))
	copy(out, f.applicants)
	return out, nil
}

func (f *fakeApplicantStore) List(ctx context.Context, filter models.ApplicantFilter, limit, offset int) ([]models.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.applicants) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.applicants) {
		end = len(f.applicants)
	}
	return f.applicants[offset:end], nil
}

func (f *fakeApplicantStore) Count(ctx context.Context, filter models.ApplicantFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applicants), nil
}

func (f *fakeApplicantStore) Reconcile(ctx context.Context, batch []models.NewApplicant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reconcileErr != nil {
		return f.reconcileErr
	}
	f.reconciled = append(f.reconciled, batch)
	return nil
}

func (f *fakeApplicantStore) ApplyPlan(ctx context.Context, assignments map[int64]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, assignments)
	for i := range f.applicants {
		if code, ok := assignments[f.applicants[i].ID]; ok {
			c := code
			f.applicants[i].CurrentProgram = &c
		} else {
			f.applicants[i].CurrentProgram = nil
		}
	}
	return nil
}

func (f *fakeApplicantStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applicants = nil
	f.cleared = true
	return nil
}

// fakeHistoryStore records snapshot upserts keyed like the real table
type fakeHistoryStore struct {
	mu sync.Mutex

	rows      map[string]models.HistoryRecord
	upsertErr error
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{rows: make(map[string]models.HistoryRecord)}
}

func (f *fakeHistoryStore) Upsert(ctx context.Context, date, programCode string, passingScore, placesFilled int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[date+"/"+programCode] = models.HistoryRecord{
		RecordDate:   date,
		ProgramCode:  programCode,
		PassingScore: passingScore,
		PlacesFilled: placesFilled,
	}
	return nil
}

func (f *fakeHistoryStore) ListSeries(ctx context.Context) ([]models.HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.HistoryRecord
	for _, rec := range f.rows {
		out = append(out, rec)
	}
	return out, nil
}

// fakeTrigger records allocation trigger dates
type fakeTrigger struct {
	mu    sync.Mutex
	dates []string
}

func (f *fakeTrigger) Trigger(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
}

func (f *fakeTrigger) triggered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.dates))
	copy(out, f.dates)
	return out
}

func testPrograms() []models.Program {
	return []models.Program{
		{Code: "IB", Name: "Information Security", Capacity: 1},
		{Code: "PM", Name: "Applied Mathematics", Capacity: 2},
	}
}

func testApplicant(id, externalID int64, agreed bool, total int, priorities ...string) models.Applicant {
	return models.Applicant{
		ID:         id,
		ExternalID: externalID,
		FullName:   "Applicant",
		Agreed:     agreed,
		TotalScore: total,
		Scores:     models.Scores{Math: total},
		Priorities: priorities,
	}
}
