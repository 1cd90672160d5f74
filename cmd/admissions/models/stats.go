package models

// ProgramStats holds the derived statistics for one program after an
// allocation run. Output lists are sorted by program code.
type ProgramStats struct {
	ProgramCode  string `json:"program_code"`
	ProgramName  string `json:"program_name"`
	PlacesTotal  int    `json:"places_total"`
	PlacesFilled int    `json:"places_filled"`

	// Total score of the lowest-scoring admitted applicant, 0 when empty
	PassingScore int `json:"passing_score"`

	// True when filled < capacity
	IsShortage bool `json:"is_shortage"`

	// Applicants listing this program at rank r (1-based index r-1),
	// consent ignored
	DemandByRank [MaxPriorities]int `json:"demand_by_rank"`

	// Applicants holding a seat here that listed it at rank r
	AdmittedByRank [MaxPriorities]int `json:"admitted_by_rank"`
}
