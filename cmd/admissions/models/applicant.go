package models

// MaxPriorities is the maximum length of an applicant's preference list
const MaxPriorities = 4

// Scores holds the four component scores of an applicant
type Scores struct {
	Math         int `db:"score_math" json:"math"`
	Language     int `db:"score_language" json:"language"`
	Physics      int `db:"score_physics" json:"physics"`
	Achievements int `db:"score_achievements" json:"achievements"`
}

// Sum returns the derived total score. The stored total is always
// recomputed from the components at ingestion, never edited on its own.
func (s Scores) Sum() int {
	return s.Math + s.Language + s.Physics + s.Achievements
}

// Applicant represents a candidate with scores, a consent flag and
// ranked program preferences.
// Maps to: applicants table
type Applicant struct {
	// Internal storage identifier
	ID int64 `db:"id" json:"id"`

	// Stable identifier assigned by the source data, used to correlate
	// repeated imports
	ExternalID int64 `db:"external_id" json:"external_id"`

	// Display only
	FullName string `db:"full_name" json:"full_name"`

	// Consent to enroll if admitted; applicants without consent are
	// excluded from assignment but still counted as demand signal
	Agreed bool `db:"agreed" json:"agreed"`

	// Always Scores.Sum()
	TotalScore int `db:"total_score" json:"total_score"`

	Scores Scores `json:"scores"`

	// Ordered preference list, rank 1 first, up to MaxPriorities codes.
	// Duplicates are stored as imported; the engine does not deduplicate.
	Priorities []string `db:"priorities" json:"priorities"`

	// Program the applicant currently holds a seat in, nil when unassigned.
	// Owned exclusively by the allocation engine.
	CurrentProgram *string `db:"current_program" json:"current_program"`
}

// Assigned reports whether the applicant currently holds a seat
func (a *Applicant) Assigned() bool {
	return a.CurrentProgram != nil && *a.CurrentProgram != ""
}

// PaginationMeta describes a page of the applicant list
type PaginationMeta struct {
	TotalItems  int `json:"total_items"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// ApplicantListResponse is the paginated applicant listing payload
type ApplicantListResponse struct {
	Data []Applicant    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// ApplicantFilter narrows the applicant listing
type ApplicantFilter struct {
	Search   string
	Agreed   *bool
	Program  string
	MinScore *int
}
