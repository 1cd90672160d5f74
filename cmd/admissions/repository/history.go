package repository

import (
	"context"
	"fmt"

	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/db"
)

// HistoryRepository handles the dated snapshot time series
type HistoryRepository struct {
	db *db.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(database *db.DB) *HistoryRepository {
	return &HistoryRepository{db: database}
}

// Upsert writes one snapshot row keyed by (date, program). Re-running a
// date overwrites that date's row; distinct dates accumulate.
func (r *HistoryRepository) Upsert(ctx context.Context, date, programCode string, passingScore, placesFilled int) error {
	query := `
		INSERT INTO history_stats (record_date, program_code, passing_score, places_filled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (record_date, program_code) DO UPDATE SET
			passing_score = excluded.passing_score,
			places_filled = excluded.places_filled
	`

	_, err := r.db.Exec(ctx, query, date, programCode, passingScore, placesFilled)
	if err != nil {
		return fmt.Errorf("failed to upsert history for %s/%s: %w", date, programCode, err)
	}

	return nil
}

// ListSeries retrieves all snapshot rows ordered by date
func (r *HistoryRepository) ListSeries(ctx context.Context) ([]models.HistoryRecord, error) {
	query := `
		SELECT record_date::text, program_code, passing_score, places_filled
		FROM history_stats
		ORDER BY record_date ASC, program_code ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(&rec.RecordDate, &rec.ProgramCode, &rec.PassingScore, &rec.PlacesFilled); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return records, nil
}
