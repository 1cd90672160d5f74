package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/cache"
)

func TestProgramStats_ServedFromSnapshot(t *testing.T) {
	snapshot := cache.NewMemoryCache(testLogger())
	cached := []models.ProgramStats{{ProgramCode: "PM", PlacesFilled: 7}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, snapshot.Set(context.Background(), SnapshotKeyStats, payload, time.Minute))

	// The store would disagree; the snapshot wins
	store := &fakeApplicantStore{}
	svc := NewStatisticsService(store, testPrograms(), snapshot, testLogger())

	stats, err := svc.ProgramStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, stats)
}

func TestProgramStats_RecomputesOnCacheMiss(t *testing.T) {
	code := "PM"
	store := &fakeApplicantStore{
		applicants: []models.Applicant{
			func() models.Applicant {
				a := testApplicant(1, 101, true, 80, "PM")
				a.CurrentProgram = &code
				return a
			}(),
		},
	}
	svc := NewStatisticsService(store, testPrograms(), cache.NewMemoryCache(testLogger()), testLogger())

	stats, err := svc.ProgramStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "IB", stats[0].ProgramCode)
	assert.Equal(t, "PM", stats[1].ProgramCode)
	assert.Equal(t, 1, stats[1].PlacesFilled)
	assert.Equal(t, 80, stats[1].PassingScore)
}

func TestProgramStats_NilCacheFallsBackToStore(t *testing.T) {
	store := &fakeApplicantStore{}
	svc := NewStatisticsService(store, testPrograms(), nil, testLogger())

	stats, err := svc.ProgramStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.True(t, stats[0].IsShortage)
}

func TestProgramStats_CorruptSnapshotRecomputed(t *testing.T) {
	snapshot := cache.NewMemoryCache(testLogger())
	require.NoError(t, snapshot.Set(context.Background(), SnapshotKeyStats, []byte("{not json"), time.Minute))

	store := &fakeApplicantStore{}
	svc := NewStatisticsService(store, testPrograms(), snapshot, testLogger())

	stats, err := svc.ProgramStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2, "a corrupt snapshot falls through to recomputation")
}

func TestOverlaps_ServedFromSnapshot(t *testing.T) {
	snapshot := cache.NewMemoryCache(testLogger())
	cached := map[string]int{"IB+PM": 3}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, snapshot.Set(context.Background(), SnapshotKeyOverlaps, payload, time.Minute))

	svc := NewStatisticsService(&fakeApplicantStore{}, testPrograms(), snapshot, testLogger())

	overlaps, err := svc.Overlaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, overlaps)
}

func TestOverlaps_RecomputesOnCacheMiss(t *testing.T) {
	store := &fakeApplicantStore{
		applicants: []models.Applicant{
			testApplicant(1, 101, true, 80, "PM", "IB"),
		},
	}
	svc := NewStatisticsService(store, testPrograms(), nil, testLogger())

	overlaps, err := svc.Overlaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"IB+PM": 1}, overlaps)
}
