package engine

import (
	"sort"

	"github.com/unistat/admissions/cmd/admissions/models"
)

// Plan is the full outcome of one allocation pass. It is a pure value:
// nothing is persisted while the plan is being decided, the repository
// applies it afterwards as a single atomic batch.
type Plan struct {
	// Applicant internal ID -> program code
	Assignments map[int64]string

	// Program code -> admitted applicant IDs in decision order
	// (descending score), so the last entry carries the cutoff score
	Admitted map[string][]int64

	// Program code -> seats consumed
	Filled map[string]int

	// Program code -> total score of the last admitted applicant,
	// 0 when the program stayed empty
	Cutoffs map[string]int
}

// Allocate computes a seat assignment for the given applicants under the
// configured program capacities.
//
// The mechanism is a one-sided, irrevocable, priority-ordered greedy
// assignment: applicants are processed once in descending score order and
// take the highest-ranked program on their list that still has room.
// Nobody is displaced and nobody is reconsidered at a lower rank after
// being seated. Prior stored assignments are ignored entirely.
func Allocate(applicants []models.Applicant, programs []models.Program) *Plan {
	capacities := make(map[string]int, len(programs))
	for _, p := range programs {
		capacities[p.Code] = p.Capacity
	}

	plan := &Plan{
		Assignments: make(map[int64]string),
		Admitted:    make(map[string][]int64, len(programs)),
		Filled:      make(map[string]int, len(programs)),
		Cutoffs:     make(map[string]int, len(programs)),
	}
	for _, p := range programs {
		plan.Admitted[p.Code] = nil
		plan.Filled[p.Code] = 0
		plan.Cutoffs[p.Code] = 0
	}

	// Only consenting applicants compete for seats
	eligible := make([]models.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if a.Agreed {
			eligible = append(eligible, a)
		}
	}

	// Descending by total, then math, then language. External ID breaks
	// remaining ties so runs are reproducible for identical input.
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].TotalScore != eligible[j].TotalScore {
			return eligible[i].TotalScore > eligible[j].TotalScore
		}
		if eligible[i].Scores.Math != eligible[j].Scores.Math {
			return eligible[i].Scores.Math > eligible[j].Scores.Math
		}
		if eligible[i].Scores.Language != eligible[j].Scores.Language {
			return eligible[i].Scores.Language > eligible[j].Scores.Language
		}
		return eligible[i].ExternalID < eligible[j].ExternalID
	})

	for _, person := range eligible {
		for _, code := range person.Priorities {
			capacity, known := capacities[code]
			if !known {
				// Codes outside the configured set never admit anyone
				continue
			}
			if plan.Filled[code] >= capacity {
				continue
			}
			plan.Assignments[person.ID] = code
			plan.Admitted[code] = append(plan.Admitted[code], person.ID)
			plan.Filled[code]++
			plan.Cutoffs[code] = person.TotalScore
			break
		}
	}

	return plan
}

// Apply writes the plan's assignments onto an in-memory applicant set,
// returning a copy that reflects the post-run state. Applicants absent
// from the plan come back unassigned.
func (p *Plan) Apply(applicants []models.Applicant) []models.Applicant {
	out := make([]models.Applicant, len(applicants))
	for i, a := range applicants {
		out[i] = a
		if code, ok := p.Assignments[a.ID]; ok {
			c := code
			out[i].CurrentProgram = &c
		} else {
			out[i].CurrentProgram = nil
		}
	}
	return out
}
