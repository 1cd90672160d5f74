package models

// RawApplicantRow is one unvalidated row from an uploaded batch.
// Consent and priorities arrive as free text and are normalized by the
// import service.
type RawApplicantRow struct {
	ExternalID   int64  `json:"external_id"`
	FullName     string `json:"full_name"`
	Math         int    `json:"math"`
	Language     int    `json:"language"`
	Physics      int    `json:"physics"`
	Achievements int    `json:"achievements"`
	Agreed       string `json:"agreed"`
	Priorities   string `json:"priorities"`
}

// ImportRequest is the import endpoint payload. Date defaults to the
// current date when omitted.
type ImportRequest struct {
	Date    string            `json:"date,omitempty"`
	Records []RawApplicantRow `json:"records"`
}

// ImportSummary counts the outcome of one reconciliation
type ImportSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// ImportResponse is returned to the import caller. It reflects ingestion
// only; the allocation run it triggers completes in the background.
type ImportResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Summary ImportSummary `json:"summary"`
}

// NewApplicant is a validated applicant write-request produced by the
// import service after normalization
type NewApplicant struct {
	ExternalID int64
	FullName   string
	Scores     Scores
	Agreed     bool
	Priorities []string
}
