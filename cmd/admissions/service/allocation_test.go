package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/cache"
)

func newAllocationService(store *fakeApplicantStore, history *fakeHistoryStore, c cache.Cache) *AllocationService {
	return NewAllocationService(&AllocationServiceOpts{
		Applicants: store,
		History:    history,
		Programs:   testPrograms(),
		Cache:      c,
		Logger:     testLogger(),
	})
}

func TestAllocationRun_PersistsPlanAndHistory(t *testing.T) {
	store := &fakeApplicantStore{
		applicants: []models.Applicant{
			testApplicant(1, 101, true, 90, "PM"),
			testApplicant(2, 102, true, 80, "PM", "IB"),
			testApplicant(3, 103, true, 70, "PM", "IB"),
			testApplicant(4, 104, false, 100, "IB"),
		},
	}
	history := newFakeHistoryStore()
	snapshot := cache.NewMemoryCache(testLogger())

	svc := newAllocationService(store, history, snapshot)
	require.NoError(t, svc.Run(context.Background(), "2025-07-01"))

	// The plan landed as one batch
	require.Len(t, store.applied, 1)
	assert.Equal(t, map[int64]string{1: "PM", 2: "PM", 3: "IB"}, store.applied[0])

	// One history row per configured program
	require.Len(t, history.rows, 2)
	pm := history.rows["2025-07-01/PM"]
	assert.Equal(t, 80, pm.PassingScore)
	assert.Equal(t, 2, pm.PlacesFilled)
	ib := history.rows["2025-07-01/IB"]
	assert.Equal(t, 70, ib.PassingScore)
	assert.Equal(t, 1, ib.PlacesFilled)

	// The snapshot was published for readers
	payload, found, err := snapshot.Get(context.Background(), SnapshotKeyStats)
	require.NoError(t, err)
	require.True(t, found)
	var stats []models.ProgramStats
	require.NoError(t, json.Unmarshal(payload, &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "IB", stats[0].ProgramCode)
	assert.False(t, stats[0].IsShortage)
}

func TestAllocationRun_FetchFailureAbortsBeforePersisting(t *testing.T) {
	store := &fakeApplicantStore{fetchErr: errors.New("db down")}
	history := newFakeHistoryStore()

	svc := newAllocationService(store, history, nil)
	err := svc.Run(context.Background(), "2025-07-01")

	require.Error(t, err)
	assert.Empty(t, store.applied, "nothing may be written when the fetch fails")
	assert.Empty(t, history.rows)
}

func TestAllocationRun_ApplyFailureSkipsHistory(t *testing.T) {
	store := &fakeApplicantStore{
		applicants: []models.Applicant{testApplicant(1, 101, true, 90, "PM")},
		applyErr:   errors.New("tx aborted"),
	}
	history := newFakeHistoryStore()

	svc := newAllocationService(store, history, nil)
	err := svc.Run(context.Background(), "2025-07-01")

	require.Error(t, err)
	assert.Empty(t, history.rows, "history must reflect persisted assignments only")
}

func TestAllocationRun_HistoryFailureDoesNotFailRun(t *testing.T) {
	store := &fakeApplicantStore{
		applicants: []models.Applicant{testApplicant(1, 101, true, 90, "PM")},
	}
	history := newFakeHistoryStore()
	history.upsertErr = errors.New("disk full")

	svc := newAllocationService(store, history, nil)
	assert.NoError(t, svc.Run(context.Background(), "2025-07-01"),
		"the assignment is already committed, a snapshot write failure is logged only")
}

func TestAllocationRun_IdempotentOnUnchangedInput(t *testing.T) {
	store := &fakeApplicantStore{
		applicants: []models.Applicant{
			testApplicant(1, 101, true, 90, "PM"),
			testApplicant(2, 102, true, 80, "IB"),
		},
	}
	history := newFakeHistoryStore()

	svc := newAllocationService(store, history, nil)
	require.NoError(t, svc.Run(context.Background(), "2025-07-01"))
	require.NoError(t, svc.Run(context.Background(), "2025-07-01"))

	require.Len(t, store.applied, 2)
	assert.Equal(t, store.applied[0], store.applied[1])
	assert.Len(t, history.rows, 2, "re-running the same date overwrites, not duplicates")
}
