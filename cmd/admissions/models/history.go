package models

// HistoryRecord is one dated snapshot row for a program.
// Maps to: history_stats table, primary key (record_date, program_code)
type HistoryRecord struct {
	RecordDate   string `db:"record_date" json:"date"`
	ProgramCode  string `db:"program_code" json:"program_code"`
	PassingScore int    `db:"passing_score" json:"score"`
	PlacesFilled int    `db:"places_filled" json:"filled"`
}

// HistoryPoint is one time-series entry in the grouped history payload
type HistoryPoint struct {
	Date   string `json:"date"`
	Score  int    `json:"score"`
	Filled int    `json:"filled"`
}
