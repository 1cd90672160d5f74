package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unistat/admissions/cmd/admissions/models"
)

func assigned(a models.Applicant, code string) models.Applicant {
	a.CurrentProgram = &code
	return a
}

func TestAggregate_DemandIncludesNonConsenting(t *testing.T) {
	// P lacks consent and holds no seat, but still counts as rank-1
	// demand for A
	apps := []models.Applicant{
		applicant(1, 101, false, models.Scores{Math: 50}, "A"),
		assigned(applicant(2, 102, true, models.Scores{Math: 40}, "A"), "A"),
	}

	stats := Aggregate(apps, programs(map[string]int{"A": 1}))

	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].DemandByRank[0])
	assert.Equal(t, 1, stats[0].AdmittedByRank[0])
	assert.Equal(t, 1, stats[0].PlacesFilled)
}

func TestAggregate_RankCounters(t *testing.T) {
	apps := []models.Applicant{
		assigned(applicant(1, 101, true, models.Scores{Math: 90}, "A", "B"), "A"),
		assigned(applicant(2, 102, true, models.Scores{Math: 80}, "B", "A"), "A"),
		applicant(3, 103, true, models.Scores{Math: 70}, "C", "A"),
	}

	stats := Aggregate(apps, programs(map[string]int{"A": 5, "B": 5, "C": 5}))
	require.Len(t, stats, 3)

	byCode := make(map[string]models.ProgramStats)
	for _, s := range stats {
		byCode[s.ProgramCode] = s
	}

	a := byCode["A"]
	assert.Equal(t, 1, a.DemandByRank[0], "only applicant 1 lists A first")
	assert.Equal(t, 2, a.DemandByRank[1], "applicants 2 and 3 list A second")
	assert.Equal(t, 1, a.AdmittedByRank[0])
	assert.Equal(t, 1, a.AdmittedByRank[1])
	assert.Equal(t, 2, a.PlacesFilled)

	// Admitted ranks must sum to the filled count
	sum := 0
	for _, n := range a.AdmittedByRank {
		sum += n
	}
	assert.Equal(t, a.PlacesFilled, sum)

	for _, s := range stats {
		for r := 0; r < models.MaxPriorities; r++ {
			assert.LessOrEqual(t, s.AdmittedByRank[r], s.DemandByRank[r],
				"program %s rank %d: admitted exceeds demand", s.ProgramCode, r+1)
		}
	}
}

func TestAggregate_PassingScoreIsLowestAdmitted(t *testing.T) {
	apps := []models.Applicant{
		assigned(applicant(1, 101, true, models.Scores{Math: 90}, "A"), "A"),
		assigned(applicant(2, 102, true, models.Scores{Math: 60}, "A"), "A"),
		assigned(applicant(3, 103, true, models.Scores{Math: 75}, "A"), "A"),
	}

	stats := Aggregate(apps, programs(map[string]int{"A": 3}))

	require.Len(t, stats, 1)
	assert.Equal(t, 60, stats[0].PassingScore)
	assert.False(t, stats[0].IsShortage)
}

func TestAggregate_EmptyProgram(t *testing.T) {
	stats := Aggregate(nil, programs(map[string]int{"A": 10}))

	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].PassingScore)
	assert.Equal(t, 0, stats[0].PlacesFilled)
	assert.True(t, stats[0].IsShortage)
}

func TestAggregate_SortedByProgramCode(t *testing.T) {
	stats := Aggregate(nil, programs(map[string]int{"IVT": 50, "IB": 20, "PM": 40, "ITSS": 30}))

	require.Len(t, stats, 4)
	codes := []string{stats[0].ProgramCode, stats[1].ProgramCode, stats[2].ProgramCode, stats[3].ProgramCode}
	assert.Equal(t, []string{"IB", "ITSS", "IVT", "PM"}, codes)
}

func TestAggregate_DuplicateListingCountedOnceAsAdmission(t *testing.T) {
	apps := []models.Applicant{
		assigned(applicant(1, 101, true, models.Scores{Math: 80}, "A", "A"), "A"),
	}

	stats := Aggregate(apps, programs(map[string]int{"A": 1}))

	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].DemandByRank[0])
	assert.Equal(t, 1, stats[0].DemandByRank[1], "duplicate listing is demand at both ranks")
	assert.Equal(t, 1, stats[0].AdmittedByRank[0])
	assert.Equal(t, 0, stats[0].AdmittedByRank[1], "admission attributed to the first occurrence only")
}

func TestAggregate_UnknownCodeIgnored(t *testing.T) {
	apps := []models.Applicant{
		applicant(1, 101, true, models.Scores{Math: 80}, "XX", "A"),
	}

	stats := Aggregate(apps, programs(map[string]int{"A": 1}))

	require.Len(t, stats, 1)
	assert.Equal(t, "A", stats[0].ProgramCode)
	assert.Equal(t, 1, stats[0].DemandByRank[1])
}
