package engine

import (
	"sort"

	"github.com/unistat/admissions/cmd/admissions/models"
)

// Aggregate derives per-program statistics from an applicant set whose
// CurrentProgram fields reflect the assignment being reported. Output is
// sorted by program code for deterministic presentation.
//
// Demand counters include non-consenting applicants (pure preference
// signal); admitted counters only include applicants holding the current
// assignment.
func Aggregate(applicants []models.Applicant, programs []models.Program) []models.ProgramStats {
	byCode := make(map[string]*models.ProgramStats, len(programs))
	order := make([]string, 0, len(programs))
	for _, p := range programs {
		byCode[p.Code] = &models.ProgramStats{
			ProgramCode: p.Code,
			ProgramName: p.Name,
			PlacesTotal: p.Capacity,
		}
		order = append(order, p.Code)
	}
	sort.Strings(order)

	for _, a := range applicants {
		admittedCounted := false
		for rank, code := range a.Priorities {
			if rank >= models.MaxPriorities {
				break
			}
			stats, known := byCode[code]
			if !known {
				continue
			}
			stats.DemandByRank[rank]++

			// A duplicated code counts as demand at every rank it holds,
			// but admission is attributed once, at its first occurrence,
			// so admitted ranks sum to the filled count.
			if !admittedCounted && a.Assigned() && *a.CurrentProgram == code {
				stats.AdmittedByRank[rank]++
				admittedCounted = true
			}
		}

		if !a.Assigned() {
			continue
		}
		stats, known := byCode[*a.CurrentProgram]
		if !known {
			continue
		}
		stats.PlacesFilled++
		if stats.PassingScore == 0 || a.TotalScore < stats.PassingScore {
			stats.PassingScore = a.TotalScore
		}
	}

	out := make([]models.ProgramStats, 0, len(order))
	for _, code := range order {
		stats := byCode[code]
		stats.IsShortage = stats.PlacesFilled < stats.PlacesTotal
		out = append(out, *stats)
	}
	return out
}
